package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAlreadyCancelled   = errors.New("order already cancelled")
	ErrUnauthorized       = errors.New("not authorized")
	ErrUserBlocked        = errors.New("user blocked due to repeated cancellations")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidProduct     = errors.New("invalid product")
)
