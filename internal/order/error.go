package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	ErrInvalidStatus        = errors.New("status must not be empty")
)
