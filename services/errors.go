package services

import "errors"

// Expected, user-facing conditions. Controllers map these to HTTP
// statuses; anything else is a storage failure and becomes a 500.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrOutOfStock        = errors.New("requested quantity exceeds available stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidFilter     = errors.New("invalid filter parameters")
)
