package transaction

import (
	"context"

	"github.com/omokarogabriel/banking-system/internal/models"
)

// AccountService is the narrow slice of the account store the ledger
// consumes. Accounts are referenced by account number only; the ledger
// validates both parties exist before writing anything.
type AccountService interface {
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
}

// Cache is the slice of the account cache the ledger invalidates.
// Settlement writes balances directly, behind the account service's
// back, so the ledger must drop the cached copies itself.
type Cache interface {
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// Notifier dispatches fire-and-forget customer notifications.
type Notifier interface {
	Send(n models.Notification) error
}

// Service is the transaction ledger contract.
type Service interface {
	ProcessTransfer(ctx context.Context, req TransferRequest) (*TransactionInfo, error)
	Deposit(ctx context.Context, req DepositRequest) (*TransactionInfo, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*TransactionInfo, error)
	History(ctx context.Context, accountNumber string, page, size int) ([]TransactionInfo, error)
	GetByReference(ctx context.Context, reference string) (*TransactionInfo, error)
}
