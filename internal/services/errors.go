package services

import "errors"

// Validation and workflow errors surfaced to callers as typed values.
// All of them are recoverable; none had side effects when returned.
var (
	ErrInvalidName       = errors.New("customer name must contain only letters and spaces")
	ErrInvalidPhone      = errors.New("phone number must contain only digits")
	ErrEmptyCart         = errors.New("order must contain at least one item")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
)
