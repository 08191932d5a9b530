package transaction

import "errors"

// Service errors
var (
	ErrSourceAccountNotFound      = errors.New("source account not found")
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	ErrAccountNotFound            = errors.New("account not found")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrSameAccount                = errors.New("source and destination are the same account")
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrInternal                   = errors.New("internal error")
)
