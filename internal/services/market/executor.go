package market

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/domain/models"
	serviceErrors "marketplace/internal/errors/service"
	storageErrors "marketplace/internal/errors/storage"
	"marketplace/internal/events"
	"marketplace/internal/metrics"
)

// TradeRequest is one (orderId, quantity) pair of an AGGRESS command.
type TradeRequest struct {
	OrderID  int64
	Quantity int64
}

// TradeResult reports the outcome of one pair: either Fill or Err is set.
type TradeResult struct {
	OrderID  int64
	Quantity int64
	Fill     models.Fill
	Err      error
}

// Aggress trades against the listed resting orders on behalf of dealerID.
// Any dealer may aggress any order, including its own. Pairs execute in the
// order given and independently: one failed pair never aborts its siblings,
// and a quantity larger than what remains rejects that pair whole instead of
// filling partially. The returned error covers only batch-level failures
// (rate limit, cancelled context), never a single pair.
func (s *Service) Aggress(ctx context.Context, dealerID string, trades []TradeRequest) ([]TradeResult, error) {
	const op = "Service.Aggress"

	if err := s.checkLimit(ctx, s.aggressLimiter, dealerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]TradeResult, 0, len(trades))
	for _, trade := range trades {
		select {
		case <-ctx.Done():
			return results, fmt.Errorf("%s: %w", op, ctx.Err())
		default:
		}

		results = append(results, s.executeTrade(ctx, dealerID, trade))
	}

	return results, nil
}

func (s *Service) executeTrade(ctx context.Context, dealerID string, trade TradeRequest) TradeResult {
	result := TradeResult{OrderID: trade.OrderID, Quantity: trade.Quantity}

	order, err := s.book.ReduceQuantity(ctx, trade.OrderID, trade.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, storageErrors.ErrOrderNotFound):
			result.Err = serviceErrors.ErrUnknownOrder
		case errors.Is(err, storageErrors.ErrInsufficientQuantity):
			result.Err = serviceErrors.ErrInvalidAmount
		default:
			result.Err = err
		}

		return result
	}

	// The aggressor takes the opposite side of the resting order.
	direction := models.FillSold
	if order.Side == models.SideSell {
		direction = models.FillBought
	}

	result.Fill = models.Fill{
		OrderID:      order.ID,
		Direction:    direction,
		Quantity:     trade.Quantity,
		Price:        order.Price,
		Counterparty: order.DealerID,
	}

	metrics.TradesExecuted.Inc()
	metrics.QuantityTraded.Add(float64(trade.Quantity))

	s.publish(ctx, events.TradeExecuted(dealerID, order, result.Fill))

	return result
}
