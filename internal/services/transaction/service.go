// Package transaction implements the transaction ledger: transfer
// processing with settlement, deposits, withdrawals, and paginated
// history.
//
// Settlement is real, not ledger-only: both stores share one database,
// so a transfer's balance check, debit, credit, and record insert run
// inside a single database transaction. A transfer is exactly one of
// {not recorded, recorded as COMPLETED with money moved}.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/omokarogabriel/banking-system/internal/models"
	"github.com/omokarogabriel/banking-system/internal/repositories"
	"github.com/omokarogabriel/banking-system/internal/services/account"

	"gorm.io/gorm"
)

type service struct {
	repo     repositories.TransactionRepository
	accounts AccountService
	cache    Cache
	notifier Notifier
	config   Config
}

// NewService creates a new ledger service. Cache and notifier are
// optional; the repository and account service are not.
func NewService(repo repositories.TransactionRepository, accounts AccountService, cache Cache, notifier Notifier, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if accounts == nil {
		panic("account service is required")
	}
	if config.ProcessingTimeout <= 0 {
		config.ProcessingTimeout = DefaultProcessingTimeout
	}
	if config.ReferenceAttempts <= 0 {
		config.ReferenceAttempts = DefaultReferenceAttempts
	}
	return &service{
		repo:     repo,
		accounts: accounts,
		cache:    cache,
		notifier: notifier,
		config:   config,
	}
}

func (s *service) ProcessTransfer(ctx context.Context, req TransferRequest) (*TransactionInfo, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.SourceAccountNumber == req.DestinationAccountNumber {
		return nil, ErrSameAccount
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	source, err := s.accounts.GetByNumber(ctx, req.SourceAccountNumber)
	if err != nil {
		return nil, s.mapLookupErr(err, ErrSourceAccountNotFound, req.SourceAccountNumber)
	}
	destination, err := s.accounts.GetByNumber(ctx, req.DestinationAccountNumber)
	if err != nil {
		return nil, s.mapLookupErr(err, ErrDestinationAccountNotFound, req.DestinationAccountNumber)
	}

	if source.AccountBalance.LessThan(req.Amount) {
		return nil, ErrInsufficientFunds
	}

	record := &models.Transaction{
		SourceAccountNumber:      req.SourceAccountNumber,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   req.Amount,
		TransactionType:          models.TransactionTypeTransfer,
		Status:                   models.TransactionStatusCompleted,
		Description:              req.Description,
	}
	if err := s.persist(ctx, record, s.repo.Settle); err != nil {
		// Another transfer may have drained the source between the
		// balance check and settlement; the conditional debit catches it.
		// Either party can likewise disappear before the rows are locked.
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		log.Printf("transfer %s -> %s: %v", req.SourceAccountNumber, req.DestinationAccountNumber, err)
		return nil, ErrInternal
	}
	s.invalidate(record.SourceAccountNumber, record.DestinationAccountNumber)

	s.notify(source.Email, "Debit alert",
		fmt.Sprintf("Your account %s was debited %s. Reference: %s.",
			source.AccountNumber, record.Amount.StringFixed(2), record.TransactionReference))
	s.notify(destination.Email, "Credit alert",
		fmt.Sprintf("Your account %s was credited %s. Reference: %s.",
			destination.AccountNumber, record.Amount.StringFixed(2), record.TransactionReference))

	return newTransactionInfo(record), nil
}

func (s *service) Deposit(ctx context.Context, req DepositRequest) (*TransactionInfo, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	account, err := s.accounts.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, s.mapLookupErr(err, ErrAccountNotFound, req.AccountNumber)
	}

	record := &models.Transaction{
		SourceAccountNumber:      req.AccountNumber,
		DestinationAccountNumber: req.AccountNumber,
		Amount:                   req.Amount,
		TransactionType:          models.TransactionTypeDeposit,
		Status:                   models.TransactionStatusCompleted,
		Description:              req.Description,
	}
	if err := s.persist(ctx, record, s.repo.Deposit); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		log.Printf("deposit %s: %v", req.AccountNumber, err)
		return nil, ErrInternal
	}
	s.invalidate(req.AccountNumber)

	s.notify(account.Email, "Credit alert",
		fmt.Sprintf("Your account %s was credited %s. Reference: %s.",
			account.AccountNumber, record.Amount.StringFixed(2), record.TransactionReference))

	return newTransactionInfo(record), nil
}

func (s *service) Withdraw(ctx context.Context, req WithdrawRequest) (*TransactionInfo, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	account, err := s.accounts.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, s.mapLookupErr(err, ErrAccountNotFound, req.AccountNumber)
	}

	if account.AccountBalance.LessThan(req.Amount) {
		return nil, ErrInsufficientFunds
	}

	record := &models.Transaction{
		SourceAccountNumber:      req.AccountNumber,
		DestinationAccountNumber: req.AccountNumber,
		Amount:                   req.Amount,
		TransactionType:          models.TransactionTypeWithdrawal,
		Status:                   models.TransactionStatusCompleted,
		Description:              req.Description,
	}
	if err := s.persist(ctx, record, s.repo.Withdraw); err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		log.Printf("withdrawal %s: %v", req.AccountNumber, err)
		return nil, ErrInternal
	}
	s.invalidate(req.AccountNumber)

	s.notify(account.Email, "Debit alert",
		fmt.Sprintf("Your account %s was debited %s. Reference: %s.",
			account.AccountNumber, record.Amount.StringFixed(2), record.TransactionReference))

	return newTransactionInfo(record), nil
}

func (s *service) History(ctx context.Context, accountNumber string, page, size int) ([]TransactionInfo, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	records, err := s.repo.FindByAccountNumber(ctx, accountNumber, size, page*size)
	if err != nil {
		log.Printf("history %s: %v", accountNumber, err)
		return nil, ErrInternal
	}

	infos := make([]TransactionInfo, 0, len(records))
	for i := range records {
		infos = append(infos, *newTransactionInfo(&records[i]))
	}
	return infos, nil
}

func (s *service) GetByReference(ctx context.Context, reference string) (*TransactionInfo, error) {
	record, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		log.Printf("transaction lookup %s: %v", reference, err)
		return nil, ErrInternal
	}
	return newTransactionInfo(record), nil
}

// persist writes the record via op, regenerating the reference on a
// duplicate-key collision. No retry reuses a reference.
func (s *service) persist(ctx context.Context, record *models.Transaction, op func(context.Context, *models.Transaction) error) error {
	var err error
	for attempt := 0; attempt < s.config.ReferenceAttempts; attempt++ {
		record.TransactionReference = NewReference()
		err = op(ctx, record)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// mapLookupErr keeps source-not-found and destination-not-found
// distinguishable; anything unexpected is the generic internal error.
func (s *service) mapLookupErr(err, notFound error, accountNumber string) error {
	if errors.Is(err, account.ErrAccountNotFound) || errors.Is(err, repositories.ErrAccountNotFound) {
		return notFound
	}
	log.Printf("account lookup %s: %v", accountNumber, err)
	return ErrInternal
}

// invalidate drops cached account records after settlement has written
// their balances directly. Runs on a fresh context: the operation's
// deadline may already be spent, and a stale entry would otherwise
// survive until its TTL.
func (s *service) invalidate(accountNumbers ...string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, number := range accountNumbers {
		if err := s.cache.DeleteAccount(ctx, number); err != nil {
			log.Printf("cache invalidation failed for %s: %v", number, err)
		}
	}
}

func (s *service) notify(recipient, subject, message string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Send(models.Notification{
		Recipient: recipient,
		Subject:   subject,
		Message:   message,
		Channel:   models.NotificationChannelEmail,
	})
	if err != nil {
		log.Printf("notification dispatch failed: %v", err)
	}
}

func newTransactionInfo(record *models.Transaction) *TransactionInfo {
	return &TransactionInfo{
		TransactionReference:     record.TransactionReference,
		SourceAccountNumber:      record.SourceAccountNumber,
		DestinationAccountNumber: record.DestinationAccountNumber,
		Amount:                   record.Amount,
		TransactionType:          record.TransactionType,
		Status:                   record.Status,
		Description:              record.Description,
		CreatedAt:                record.CreatedAt,
	}
}
