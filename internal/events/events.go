package events

import (
	"time"

	"marketplace/internal/domain/models"
)

type Type string

const (
	TypeOrderPosted   Type = "order_posted"
	TypeOrderRevoked  Type = "order_revoked"
	TypeTradeExecuted Type = "trade_executed"
)

// Event is the JSON payload published after a successful book mutation.
type Event struct {
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	OrderID  int64  `json:"order_id"`
	DealerID string `json:"dealer_id"`

	Side      models.Side      `json:"side,omitempty"`
	Commodity models.Commodity `json:"commodity,omitempty"`
	Quantity  int64            `json:"quantity,omitempty"`
	Price     string           `json:"price,omitempty"`

	// Trade fields: the aggressing dealer and its direction.
	Aggressor string               `json:"aggressor,omitempty"`
	Direction models.FillDirection `json:"direction,omitempty"`
}

func OrderPosted(order models.Order) Event {
	return Event{
		Type:       TypeOrderPosted,
		OccurredAt: time.Now().UTC(),
		OrderID:    order.ID,
		DealerID:   order.DealerID,
		Side:       order.Side,
		Commodity:  order.Commodity,
		Quantity:   order.Quantity,
		Price:      models.PriceString(order.Price),
	}
}

func OrderRevoked(order models.Order) Event {
	return Event{
		Type:       TypeOrderRevoked,
		OccurredAt: time.Now().UTC(),
		OrderID:    order.ID,
		DealerID:   order.DealerID,
	}
}

func TradeExecuted(aggressor string, resting models.Order, fill models.Fill) Event {
	return Event{
		Type:       TypeTradeExecuted,
		OccurredAt: time.Now().UTC(),
		OrderID:    resting.ID,
		DealerID:   resting.DealerID,
		Side:       resting.Side,
		Commodity:  resting.Commodity,
		Quantity:   fill.Quantity,
		Price:      models.PriceString(fill.Price),
		Aggressor:  aggressor,
		Direction:  fill.Direction,
	}
}
