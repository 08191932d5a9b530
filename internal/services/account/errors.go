package account

import "errors"

// Service errors
var (
	ErrAccountExists     = errors.New("account already exists with this email")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidDirection  = errors.New("invalid balance direction")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInternal          = errors.New("internal error")
)
