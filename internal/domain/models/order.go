package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide reports whether raw names a valid order side.
func ParseSide(raw string) (Side, bool) {
	switch Side(raw) {
	case SideBuy, SideSell:
		return Side(raw), true
	default:
		return "", false
	}
}

type Commodity string

const (
	CommodityGold   Commodity = "GOLD"
	CommoditySilver Commodity = "SILV"
	CommodityPork   Commodity = "PORK"
	CommodityRice   Commodity = "RICE"
	CommodityOil    Commodity = "OIL"
)

// Commodities is the fixed trading catalog.
var Commodities = []Commodity{
	CommodityGold,
	CommoditySilver,
	CommodityPork,
	CommodityRice,
	CommodityOil,
}

func ParseCommodity(raw string) (Commodity, bool) {
	for _, commodity := range Commodities {
		if Commodity(raw) == commodity {
			return commodity, true
		}
	}

	return "", false
}

// PriceString renders a price at the scale it was posted with. Decimal's own
// String trims trailing fractional zeros, so a price posted as "100.0" would
// otherwise read back as "100".
func PriceString(price decimal.Decimal) string {
	if exp := price.Exponent(); exp < 0 {
		return price.StringFixed(-exp)
	}

	return price.String()
}

// Order is a resting interest owned by one dealer. Everything except Quantity
// is immutable after creation; Quantity only ever decreases, and a zero
// Quantity marks the order as filled (it stays in the book until the owner
// revokes it).
type Order struct {
	ID        int64
	DealerID  string
	Side      Side
	Commodity Commodity
	Quantity  int64
	Price     decimal.Decimal
	CreatedAt time.Time
}

func (o Order) Filled() bool {
	return o.Quantity == 0
}
