package account

import (
	"context"

	"github.com/omokarogabriel/banking-system/internal/models"
)

// Service is the account store contract consumed by handlers and by the
// transaction ledger.
type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (*models.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (*models.Account, error)
}

// Cache is the subset of caching operations the service needs.
type Cache interface {
	GetAccount(ctx context.Context, accountNumber string) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// Notifier dispatches fire-and-forget customer notifications.
type Notifier interface {
	Send(n models.Notification) error
}
