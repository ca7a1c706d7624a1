package domain

import "errors"

var (
	ErrStreamNotFound        = errors.New("stream not found")
	ErrStreamExists          = errors.New("stream already exists")
	ErrInvalidStatus         = errors.New("invalid stream status")
	ErrWithdrawnDecreased    = errors.New("withdrawn amount cannot decrease")
	ErrWithdrawnExceedsTotal = errors.New("withdrawn amount exceeds stream total")
	ErrNegativeAmount        = errors.New("amount must not be negative")
)
