package command

import (
	"fmt"

	"marketplace/internal/domain/models"
)

// FormatOrder renders one order as a display line. Price prints exactly as
// posted ("100.0" stays "100.0").
func FormatOrder(order models.Order) string {
	return fmt.Sprintf("%d %s %s %s %d %s",
		order.ID,
		order.DealerID,
		order.Side,
		order.Commodity,
		order.Quantity,
		models.PriceString(order.Price),
	)
}

// FormatFill renders one executed trade from the aggressor's point of view.
func FormatFill(fill models.Fill) string {
	return fmt.Sprintf("%s %d @ %s FROM %s",
		fill.Direction,
		fill.Quantity,
		models.PriceString(fill.Price),
		fill.Counterparty,
	)
}
