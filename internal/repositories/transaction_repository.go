package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/omokarogabriel/banking-system/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository is the persistence contract for the ledger.
// Settlement methods touch the accounts table as well: both stores live
// in the same database, so moving money and recording it happen inside
// one database transaction instead of two unguarded writes.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	FindByAccountNumber(ctx context.Context, accountNumber string, limit, offset int) ([]models.Transaction, error)
	// Settle debits the source, credits the destination, and inserts the
	// record atomically. Account rows are locked in ascending
	// account-number order so opposing transfers between the same pair
	// cannot deadlock.
	Settle(ctx context.Context, record *models.Transaction) error
	// Deposit credits the destination and inserts the record atomically.
	Deposit(ctx context.Context, record *models.Transaction) error
	// Withdraw conditionally debits the source and inserts the record
	// atomically. ErrInsufficientFunds leaves nothing persisted.
	Withdraw(ctx context.Context, record *models.Transaction) error
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("transaction_reference = ?", reference).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) FindByAccountNumber(ctx context.Context, accountNumber string, limit, offset int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("source_account_number = ? OR destination_account_number = ?", accountNumber, accountNumber).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) Settle(ctx context.Context, record *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		numbers := []string{record.SourceAccountNumber, record.DestinationAccountNumber}
		sort.Strings(numbers)

		var locked []models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_number IN ?", numbers).
			Order("account_number").
			Find(&locked).Error; err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if len(locked) != 2 {
			return ErrAccountNotFound
		}

		debit := tx.Model(&models.Account{}).
			Where("account_number = ? AND account_balance >= ?", record.SourceAccountNumber, record.Amount).
			UpdateColumn("account_balance", gorm.Expr("account_balance - ?", record.Amount))
		if debit.Error != nil {
			return fmt.Errorf("failed to debit source: %w", debit.Error)
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		credit := tx.Model(&models.Account{}).
			Where("account_number = ?", record.DestinationAccountNumber).
			UpdateColumn("account_balance", gorm.Expr("account_balance + ?", record.Amount))
		if credit.Error != nil {
			return fmt.Errorf("failed to credit destination: %w", credit.Error)
		}
		if credit.RowsAffected == 0 {
			return ErrAccountNotFound
		}

		return tx.Create(record).Error
	})
}

func (r *transactionRepository) Deposit(ctx context.Context, record *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		credit := tx.Model(&models.Account{}).
			Where("account_number = ?", record.DestinationAccountNumber).
			UpdateColumn("account_balance", gorm.Expr("account_balance + ?", record.Amount))
		if credit.Error != nil {
			return fmt.Errorf("failed to credit account: %w", credit.Error)
		}
		if credit.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return tx.Create(record).Error
	})
}

func (r *transactionRepository) Withdraw(ctx context.Context, record *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&models.Account{}).
			Where("account_number = ? AND account_balance >= ?", record.SourceAccountNumber, record.Amount).
			UpdateColumn("account_balance", gorm.Expr("account_balance - ?", record.Amount))
		if debit.Error != nil {
			return fmt.Errorf("failed to debit account: %w", debit.Error)
		}
		if debit.RowsAffected == 0 {
			var account models.Account
			err := tx.Where("account_number = ?", record.SourceAccountNumber).First(&account).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}
			return ErrInsufficientFunds
		}
		return tx.Create(record).Error
	})
}
