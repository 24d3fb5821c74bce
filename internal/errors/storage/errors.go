package storage

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInsufficientQuantity = errors.New("insufficient remaining quantity")
)
