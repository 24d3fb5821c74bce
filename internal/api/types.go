package api

import (
	"time"

	"marketplace/internal/domain/models"
	svcMarket "marketplace/internal/services/market"
)

type postOrderRequest struct {
	Side      string `json:"side"`
	Commodity string `json:"commodity"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}

type orderResponse struct {
	ID        int64     `json:"id"`
	DealerID  string    `json:"dealer_id"`
	Side      string    `json:"side"`
	Commodity string    `json:"commodity"`
	Quantity  int64     `json:"quantity"`
	Price     string    `json:"price"`
	Filled    bool      `json:"filled"`
	CreatedAt time.Time `json:"created_at"`
}

func toOrderResponse(order models.Order) orderResponse {
	return orderResponse{
		ID:        order.ID,
		DealerID:  order.DealerID,
		Side:      string(order.Side),
		Commodity: string(order.Commodity),
		Quantity:  order.Quantity,
		Price:     models.PriceString(order.Price),
		Filled:    order.Filled(),
		CreatedAt: order.CreatedAt,
	}
}

type tradeRequest struct {
	OrderID  int64 `json:"order_id"`
	Quantity int64 `json:"quantity"`
}

type aggressRequest struct {
	Trades []tradeRequest `json:"trades"`
}

type tradeResponse struct {
	OrderID      int64  `json:"order_id"`
	Quantity     int64  `json:"quantity"`
	Direction    string `json:"direction,omitempty"`
	Price        string `json:"price,omitempty"`
	Counterparty string `json:"counterparty,omitempty"`
	Error        string `json:"error,omitempty"`
}

func toTradeResponses(results []svcMarket.TradeResult) []tradeResponse {
	out := make([]tradeResponse, 0, len(results))
	for _, result := range results {
		response := tradeResponse{
			OrderID:  result.OrderID,
			Quantity: result.Quantity,
		}

		if result.Err != nil {
			response.Error = result.Err.Error()
		} else {
			response.Direction = string(result.Fill.Direction)
			response.Price = models.PriceString(result.Fill.Price)
			response.Counterparty = result.Fill.Counterparty
		}

		out = append(out, response)
	}

	return out
}
