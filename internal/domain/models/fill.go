package models

import "github.com/shopspring/decimal"

type FillDirection string

const (
	FillBought FillDirection = "BOUGHT"
	FillSold   FillDirection = "SOLD"
)

// Fill describes one executed trade from the aggressor's point of view:
// BOUGHT when the resting order was a SELL, SOLD when it was a BUY. Price and
// counterparty come from the resting order.
type Fill struct {
	OrderID      int64
	Direction    FillDirection
	Quantity     int64
	Price        decimal.Decimal
	Counterparty string
}
