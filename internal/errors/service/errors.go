package service

import "errors"

// Command error kinds. The error text is the wire-level code reported on the
// diagnostic channel, so these must stay stable.
var (
	ErrUnknownCommand    = errors.New("UNKNOWN_COMMAND")
	ErrInvalidSide       = errors.New("INVALID_SIDE")
	ErrInvalidCommodity  = errors.New("INVALID_COMMODITY")
	ErrInvalidAmount     = errors.New("INVALID_AMOUNT")
	ErrInvalidPrice      = errors.New("INVALID_PRICE")
	ErrNoOrderIDProvided = errors.New("NO_ORDER_ID_PROVIDED")
	ErrInvalidOrderID    = errors.New("INVALID_ORDER_ID")
	ErrUnknownOrder      = errors.New("UNKNOWN_ORDER")
	ErrUnauthorized      = errors.New("UNAUTHORIZED")
	ErrRateLimitExceeded = errors.New("RATE_LIMITED")
)
