package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeTransfer   = "TRANSFER"
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
)

// Transaction statuses
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
	TransactionStatusCancelled = "CANCELLED"
)

// Transaction is one ledger entry. Records are append-only: once
// persisted as COMPLETED there is no update path. Accounts are
// referenced by account number, not by foreign key, so the ledger
// validates both parties exist before writing.
type Transaction struct {
	ID                       uint            `gorm:"primarykey" json:"id"`
	TransactionReference     string          `gorm:"uniqueIndex;not null" json:"transactionReference"`
	SourceAccountNumber      string          `gorm:"index;not null" json:"sourceAccountNumber"`
	DestinationAccountNumber string          `gorm:"index;not null" json:"destinationAccountNumber"`
	Amount                   decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"amount"`
	TransactionType          string          `gorm:"not null" json:"transactionType"`
	Status                   string          `gorm:"not null;default:'PENDING'" json:"status"`
	Description              string          `json:"description,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
}
