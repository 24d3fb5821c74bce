package market

import (
	"strconv"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain/models"
	serviceErrors "marketplace/internal/errors/service"
)

// PostRequest is the validated parameter set of a POST command.
type PostRequest struct {
	Side      models.Side
	Commodity models.Commodity
	Quantity  int64
	Price     decimal.Decimal
}

// ValidatePost checks the POST parameter list [side, commodity, amount,
// price]. Checks run in that fixed order and the first failing check wins;
// a missing parameter fails as its own check. Trailing extra parameters are
// ignored, as the command surface always has been lenient about them.
func ValidatePost(params []string) (PostRequest, error) {
	if len(params) < 1 {
		return PostRequest{}, serviceErrors.ErrInvalidSide
	}
	side, ok := models.ParseSide(params[0])
	if !ok {
		return PostRequest{}, serviceErrors.ErrInvalidSide
	}

	if len(params) < 2 {
		return PostRequest{}, serviceErrors.ErrInvalidCommodity
	}
	commodity, ok := models.ParseCommodity(params[1])
	if !ok {
		return PostRequest{}, serviceErrors.ErrInvalidCommodity
	}

	if len(params) < 3 {
		return PostRequest{}, serviceErrors.ErrInvalidAmount
	}
	quantity, err := strconv.ParseInt(params[2], 10, 64)
	if err != nil || quantity < 1 {
		return PostRequest{}, serviceErrors.ErrInvalidAmount
	}

	if len(params) < 4 {
		return PostRequest{}, serviceErrors.ErrInvalidPrice
	}
	price, err := decimal.NewFromString(params[3])
	if err != nil || price.IsNegative() {
		return PostRequest{}, serviceErrors.ErrInvalidPrice
	}

	return PostRequest{
		Side:      side,
		Commodity: commodity,
		Quantity:  quantity,
		Price:     price,
	}, nil
}

// ValidateRevoke checks the REVOKE parameter list [orderId].
func ValidateRevoke(params []string) (int64, error) {
	if len(params) == 0 {
		return 0, serviceErrors.ErrNoOrderIDProvided
	}

	orderID, err := strconv.ParseInt(params[0], 10, 64)
	if err != nil || orderID < 0 {
		return 0, serviceErrors.ErrInvalidOrderID
	}

	return orderID, nil
}
