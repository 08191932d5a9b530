package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/omokarogabriel/banking-system/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountRepository is the persistence contract for the account store.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Credit adds amount to the account balance unconditionally.
	Credit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error)
	// Debit subtracts amount only if the resulting balance stays >= 0.
	// The check and the write are a single conditional UPDATE, so the
	// operation is atomic with respect to concurrent adjustments.
	Debit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a gorm-backed account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("account_number = ?", accountNumber).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *accountRepository) Credit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error) {
	result := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("account_number = ?", accountNumber).
		UpdateColumn("account_balance", gorm.Expr("account_balance + ?", amount))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to credit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccountNotFound
	}
	return r.GetByNumber(ctx, accountNumber)
}

func (r *accountRepository) Debit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error) {
	result := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("account_number = ? AND account_balance >= ?", accountNumber, amount).
		UpdateColumn("account_balance", gorm.Expr("account_balance - ?", amount))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to debit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// No row matched: either the account is missing or the balance
		// would have gone negative. Disambiguate with a lookup.
		if _, err := r.GetByNumber(ctx, accountNumber); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientFunds
	}
	return r.GetByNumber(ctx, accountNumber)
}
