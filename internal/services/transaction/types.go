package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest asks the ledger to move funds between two accounts.
type TransferRequest struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber" validate:"required"`
	DestinationAccountNumber string          `json:"destinationAccountNumber" validate:"required"`
	Amount                   decimal.Decimal `json:"amount"`
	Description              string          `json:"description,omitempty" validate:"max=255"`
}

// DepositRequest credits a single account.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty" validate:"max=255"`
}

// WithdrawRequest debits a single account.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty" validate:"max=255"`
}

// TransactionInfo is the caller-facing view of a ledger record.
type TransactionInfo struct {
	TransactionReference     string          `json:"transactionReference"`
	SourceAccountNumber      string          `json:"sourceAccountNumber"`
	DestinationAccountNumber string          `json:"destinationAccountNumber"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionType          string          `json:"transactionType"`
	Status                   string          `json:"status"`
	Description              string          `json:"description,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
}

// Config holds ledger tuning knobs.
type Config struct {
	// ProcessingTimeout bounds each operation end to end. A timeout maps
	// to the internal error; the underlying outcome is unknown and is
	// never assumed either way.
	ProcessingTimeout time.Duration
	// ReferenceAttempts bounds the retry loop when a generated
	// transaction reference collides with an existing one.
	ReferenceAttempts int
}

// Defaults used when Config fields are zero.
const (
	DefaultProcessingTimeout = 30 * time.Second
	DefaultReferenceAttempts = 3
	DefaultPageSize          = 10
	MaxPageSize              = 100
)
