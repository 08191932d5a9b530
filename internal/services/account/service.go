// Package account implements the account store: creation, lookup by
// account number, and atomic balance adjustment.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/omokarogabriel/banking-system/internal/models"
	"github.com/omokarogabriel/banking-system/internal/repositories"

	"gorm.io/gorm"
)

type service struct {
	repo     repositories.AccountRepository
	cache    Cache
	notifier Notifier
	config   Config
}

// NewService creates a new account service. Cache and notifier are
// optional; the repository is not.
func NewService(repo repositories.AccountRepository, cache Cache, notifier Notifier, config Config) Service {
	if repo == nil {
		panic("repo is required")
	}
	if config.NumberAttempts <= 0 {
		config.NumberAttempts = DefaultNumberAttempts
	}
	return &service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		config:   config,
	}
}

func (s *service) Create(ctx context.Context, req CreateAccountRequest) (*models.Account, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("account create: email check failed: %v", err)
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrAccountExists
	}

	account := &models.Account{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		OtherName:              req.OtherName,
		Gender:                 req.Gender,
		Address:                req.Address,
		StateOfOrigin:          req.StateOfOrigin,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		AlternativePhoneNumber: req.AlternativePhoneNumber,
		Status:                 models.AccountStatusActive,
	}

	// The unique index is the real uniqueness guarantee; a collision on
	// the generated number shows up as a duplicate-key error and we try
	// a fresh one.
	for attempt := 0; attempt < s.config.NumberAttempts; attempt++ {
		account.AccountNumber = GenerateAccountNumber()
		err = s.repo.Create(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The email index can also trip here if two creation
			// requests race past the existence check.
			exists, checkErr := s.repo.ExistsByEmail(ctx, req.Email)
			if checkErr == nil && exists {
				return nil, ErrAccountExists
			}
			continue
		}
		log.Printf("account create: %v", err)
		return nil, ErrInternal
	}
	if err != nil {
		log.Printf("account create: number generation exhausted after %d attempts", s.config.NumberAttempts)
		return nil, ErrInternal
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAccount(ctx, account); cacheErr != nil {
			log.Printf("account create: cache set failed: %v", cacheErr)
		}
	}

	s.notify(models.Notification{
		Recipient: account.Email,
		Subject:   "Account created",
		Message: fmt.Sprintf("Hello %s, your account %s has been created with a balance of %s.",
			account.AccountName(), account.AccountNumber, account.AccountBalance.StringFixed(2)),
		Channel: models.NotificationChannelEmail,
	})

	return account, nil
}

func (s *service) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if s.cache != nil {
		if account, err := s.cache.GetAccount(ctx, accountNumber); err == nil {
			return account, nil
		}
	}

	account, err := s.repo.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		log.Printf("account lookup %s: %v", accountNumber, err)
		return nil, ErrInternal
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAccount(ctx, account); cacheErr != nil {
			log.Printf("account lookup: cache set failed: %v", cacheErr)
		}
	}
	return account, nil
}

func (s *service) AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (*models.Account, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var (
		account *models.Account
		err     error
	)
	switch req.Direction {
	case DirectionCredit:
		account, err = s.repo.Credit(ctx, req.AccountNumber, req.Amount)
	case DirectionDebit:
		account, err = s.repo.Debit(ctx, req.AccountNumber, req.Amount)
	default:
		return nil, ErrInvalidDirection
	}
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		default:
			log.Printf("balance adjust %s %s: %v", req.Direction, req.AccountNumber, err)
			return nil, ErrInternal
		}
	}

	if s.cache != nil {
		if cacheErr := s.cache.DeleteAccount(ctx, req.AccountNumber); cacheErr != nil {
			log.Printf("balance adjust: cache invalidation failed: %v", cacheErr)
		}
	}
	return account, nil
}

func (s *service) notify(n models.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(n); err != nil {
		log.Printf("notification dispatch failed: %v", err)
	}
}
