package transaction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/omokarogabriel/banking-system/internal/models"
	"github.com/omokarogabriel/banking-system/internal/repositories"
	"github.com/omokarogabriel/banking-system/internal/services/account"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	args := m.Called(ctx, reference)
	if tx := args.Get(0); tx != nil {
		return tx.(*models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) FindByAccountNumber(ctx context.Context, accountNumber string, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(ctx, accountNumber, limit, offset)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) Settle(ctx context.Context, record *models.Transaction) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRepo) Deposit(ctx context.Context, record *models.Transaction) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRepo) Withdraw(ctx context.Context, record *models.Transaction) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	args := m.Called(ctx, accountNumber)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (n *recordingNotifier) Send(notification models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.sent...)
}

func testAccount(number, email string, balance int64) *models.Account {
	return &models.Account{
		AccountNumber:  number,
		Email:          email,
		AccountBalance: decimal.NewFromInt(balance),
		Status:         models.AccountStatusActive,
	}
}

func TestService_ProcessTransfer(t *testing.T) {
	t.Run("settles and records a completed transfer", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		notifier := &recordingNotifier{}
		svc := NewService(repo, accounts, nil, notifier, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)
		repo.On("Settle", mock.Anything, mock.MatchedBy(func(record *models.Transaction) bool {
			return record.TransactionType == models.TransactionTypeTransfer &&
				record.Status == models.TransactionStatusCompleted &&
				record.Amount.Equal(decimal.NewFromInt(40)) &&
				record.SourceAccountNumber == "2024111111" &&
				record.DestinationAccountNumber == "2024222222" &&
				strings.HasPrefix(record.TransactionReference, "TXN")
		})).Return(nil)

		info, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
			Description:              "rent",
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, info.Status)
		assert.Equal(t, models.TransactionTypeTransfer, info.TransactionType)
		assert.True(t, info.Amount.Equal(decimal.NewFromInt(40)))
		assert.True(t, strings.HasPrefix(info.TransactionReference, "TXN"))

		// Debit alert to the source, credit alert to the destination.
		sent := notifier.all()
		require.Len(t, sent, 2)
		assert.Equal(t, "a@example.com", sent[0].Recipient)
		assert.Equal(t, "b@example.com", sent[1].Recipient)

		repo.AssertExpectations(t)
		accounts.AssertExpectations(t)
	})

	t.Run("insufficient funds records nothing", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(150),
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		repo.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
	})

	t.Run("missing source is distinct from missing destination", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024000000").Return(nil, account.ErrAccountNotFound)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024000000",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, ErrSourceAccountNotFound)
		accounts.AssertNotCalled(t, "GetByNumber", mock.Anything, "2024222222")
	})

	t.Run("missing destination", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024999999").Return(nil, account.ErrAccountNotFound)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024999999",
			Amount:                   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, ErrDestinationAccountNotFound)
		repo.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
	})

	t.Run("transfer to self is rejected", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024111111",
			Amount:                   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, ErrSameAccount)
		accounts.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		svc := NewService(new(MockTransactionRepo), new(MockAccountService), nil, nil, Config{})

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.Zero,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("concurrent drain caught by conditional debit", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)
		repo.On("Settle", mock.Anything, mock.Anything).Return(repositories.ErrInsufficientFunds)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("storage failure maps to internal error", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)
		repo.On("Settle", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
		})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("collaborator failure maps to internal error", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(nil, errors.New("dial tcp: timeout"))

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Deposit(t *testing.T) {
	repo := new(MockTransactionRepo)
	accounts := new(MockAccountService)
	notifier := &recordingNotifier{}
	svc := NewService(repo, accounts, nil, notifier, Config{})

	accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
	repo.On("Deposit", mock.Anything, mock.MatchedBy(func(record *models.Transaction) bool {
		return record.TransactionType == models.TransactionTypeDeposit &&
			record.Status == models.TransactionStatusCompleted &&
			record.Amount.Equal(decimal.NewFromInt(25))
	})).Return(nil)

	info, err := svc.Deposit(context.Background(), DepositRequest{
		AccountNumber: "2024111111",
		Amount:        decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeDeposit, info.TransactionType)
	require.Len(t, notifier.all(), 1)
	repo.AssertExpectations(t)
}

func TestService_Withdraw(t *testing.T) {
	t.Run("records a completed withdrawal", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		repo.On("Withdraw", mock.Anything, mock.MatchedBy(func(record *models.Transaction) bool {
			return record.TransactionType == models.TransactionTypeWithdrawal &&
				record.Status == models.TransactionStatusCompleted
		})).Return(nil)

		info, err := svc.Withdraw(context.Background(), WithdrawRequest{
			AccountNumber: "2024111111",
			Amount:        decimal.NewFromInt(60),
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionTypeWithdrawal, info.TransactionType)
	})

	t.Run("overdraft is rejected without a record", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		svc := NewService(repo, accounts, nil, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)

		_, err := svc.Withdraw(context.Background(), WithdrawRequest{
			AccountNumber: "2024111111",
			Amount:        decimal.NewFromInt(150),
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		repo.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
	})
}

func TestService_History(t *testing.T) {
	t.Run("empty history is an empty sequence, not an error", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewService(repo, new(MockAccountService), nil, nil, Config{})

		repo.On("FindByAccountNumber", mock.Anything, "2024111111", 10, 0).Return([]models.Transaction{}, nil)

		infos, err := svc.History(context.Background(), "2024111111", 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, infos)
		assert.Empty(t, infos)
	})

	t.Run("normalizes page and size", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewService(repo, new(MockAccountService), nil, nil, Config{})

		repo.On("FindByAccountNumber", mock.Anything, "2024111111", DefaultPageSize, 0).Return([]models.Transaction{}, nil)

		_, err := svc.History(context.Background(), "2024111111", -3, 0)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("maps records most-recent-first as stored", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		svc := NewService(repo, new(MockAccountService), nil, nil, Config{})

		records := []models.Transaction{
			{TransactionReference: "TXN202401020304050001", TransactionType: models.TransactionTypeTransfer, Status: models.TransactionStatusCompleted},
			{TransactionReference: "TXN202401020304050002", TransactionType: models.TransactionTypeDeposit, Status: models.TransactionStatusCompleted},
		}
		repo.On("FindByAccountNumber", mock.Anything, "2024111111", 2, 2).Return(records, nil)

		infos, err := svc.History(context.Background(), "2024111111", 1, 2)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "TXN202401020304050001", infos[0].TransactionReference)
	})
}

func TestService_GetByReference(t *testing.T) {
	repo := new(MockTransactionRepo)
	svc := NewService(repo, new(MockAccountService), nil, nil, Config{})

	repo.On("GetByReference", mock.Anything, "TXN202401020304050001").Return(nil, repositories.ErrTransactionNotFound)

	_, err := svc.GetByReference(context.Background(), "TXN202401020304050001")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

type recordingCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *recordingCache) DeleteAccount(ctx context.Context, accountNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, accountNumber)
	return nil
}

func (c *recordingCache) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

func TestService_SettlementInvalidatesCache(t *testing.T) {
	t.Run("transfer drops both parties", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		cache := &recordingCache{}
		svc := NewService(repo, accounts, cache, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)
		repo.On("Settle", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"2024111111", "2024222222"}, cache.all())
	})

	t.Run("withdrawal drops the account", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		cache := &recordingCache{}
		svc := NewService(repo, accounts, cache, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		repo.On("Withdraw", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Withdraw(context.Background(), WithdrawRequest{
			AccountNumber: "2024111111",
			Amount:        decimal.NewFromInt(60),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2024111111"}, cache.all())
	})

	t.Run("failed settlement leaves the cache alone", func(t *testing.T) {
		repo := new(MockTransactionRepo)
		accounts := new(MockAccountService)
		cache := &recordingCache{}
		svc := NewService(repo, accounts, cache, nil, Config{})

		accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 100), nil)
		accounts.On("GetByNumber", mock.Anything, "2024222222").Return(testAccount("2024222222", "b@example.com", 0), nil)
		repo.On("Settle", mock.Anything, mock.Anything).Return(repositories.ErrInsufficientFunds)

		_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
			SourceAccountNumber:      "2024111111",
			DestinationAccountNumber: "2024222222",
			Amount:                   decimal.NewFromInt(40),
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Empty(t, cache.all())
	})
}

// ledgerState backs the in-memory fakes below with one shared set of
// accounts, mirroring the single database the real repositories share.
type ledgerState struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

type fakeStoreAccountRepo struct {
	state *ledgerState
}

func (r *fakeStoreAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *account
	r.state.accounts[account.AccountNumber] = &copied
	return nil
}

func (r *fakeStoreAccountRepo) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	acct, ok := r.state.accounts[accountNumber]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	copied := *acct
	return &copied, nil
}

func (r *fakeStoreAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeStoreAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeStoreAccountRepo) Credit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	acct, ok := r.state.accounts[accountNumber]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	acct.AccountBalance = acct.AccountBalance.Add(amount)
	copied := *acct
	return &copied, nil
}

func (r *fakeStoreAccountRepo) Debit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Account, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	acct, ok := r.state.accounts[accountNumber]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	if acct.AccountBalance.LessThan(amount) {
		return nil, repositories.ErrInsufficientFunds
	}
	acct.AccountBalance = acct.AccountBalance.Sub(amount)
	copied := *acct
	return &copied, nil
}

type fakeStoreLedgerRepo struct {
	state   *ledgerState
	records []models.Transaction
}

func (r *fakeStoreLedgerRepo) Create(ctx context.Context, tx *models.Transaction) error {
	r.records = append(r.records, *tx)
	return nil
}

func (r *fakeStoreLedgerRepo) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return nil, repositories.ErrTransactionNotFound
}

func (r *fakeStoreLedgerRepo) FindByAccountNumber(ctx context.Context, accountNumber string, limit, offset int) ([]models.Transaction, error) {
	return nil, nil
}

func (r *fakeStoreLedgerRepo) Settle(ctx context.Context, record *models.Transaction) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	source, ok := r.state.accounts[record.SourceAccountNumber]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	destination, ok := r.state.accounts[record.DestinationAccountNumber]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	if source.AccountBalance.LessThan(record.Amount) {
		return repositories.ErrInsufficientFunds
	}
	source.AccountBalance = source.AccountBalance.Sub(record.Amount)
	destination.AccountBalance = destination.AccountBalance.Add(record.Amount)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeStoreLedgerRepo) Deposit(ctx context.Context, record *models.Transaction) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	acct, ok := r.state.accounts[record.DestinationAccountNumber]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	acct.AccountBalance = acct.AccountBalance.Add(record.Amount)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeStoreLedgerRepo) Withdraw(ctx context.Context, record *models.Transaction) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	acct, ok := r.state.accounts[record.SourceAccountNumber]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	if acct.AccountBalance.LessThan(record.Amount) {
		return repositories.ErrInsufficientFunds
	}
	acct.AccountBalance = acct.AccountBalance.Sub(record.Amount)
	r.records = append(r.records, *record)
	return nil
}

type memoryAccountCache struct {
	mu       sync.Mutex
	accounts map[string]models.Account
}

func newMemoryAccountCache() *memoryAccountCache {
	return &memoryAccountCache{accounts: make(map[string]models.Account)}
}

func (c *memoryAccountCache) GetAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.accounts[accountNumber]
	if !ok {
		return nil, errors.New("cache miss")
	}
	copied := cached
	return &copied, nil
}

func (c *memoryAccountCache) SetAccount(ctx context.Context, acct *models.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[acct.AccountNumber] = *acct
	return nil
}

func (c *memoryAccountCache) DeleteAccount(ctx context.Context, accountNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.accounts, accountNumber)
	return nil
}

// Reads go through the account cache, but settlement writes balances
// straight into the store. This test pins the contract that every
// settlement drops the cached copies, so a lookup right after a deposit
// sees the new balance and a fully funded transfer is not rejected on a
// stale one.
func TestService_LookupAfterSettlementIsFresh(t *testing.T) {
	state := &ledgerState{accounts: map[string]*models.Account{
		"2024111111": testAccount("2024111111", "a@example.com", 0),
		"2024222222": testAccount("2024222222", "b@example.com", 0),
	}}
	cache := newMemoryAccountCache()
	accountSvc := account.NewService(&fakeStoreAccountRepo{state: state}, cache, nil, account.Config{})
	svc := NewService(&fakeStoreLedgerRepo{state: state}, accountSvc, cache, nil, Config{})

	ctx := context.Background()

	// Warm the cache with the zero balance.
	before, err := accountSvc.GetByNumber(ctx, "2024111111")
	require.NoError(t, err)
	require.True(t, before.AccountBalance.IsZero())

	_, err = svc.Deposit(ctx, DepositRequest{
		AccountNumber: "2024111111",
		Amount:        decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	after, err := accountSvc.GetByNumber(ctx, "2024111111")
	require.NoError(t, err)
	assert.True(t, after.AccountBalance.Equal(decimal.NewFromInt(100)),
		"lookup after deposit returned %s", after.AccountBalance)

	// The transfer's balance check must see the deposited funds.
	_, err = svc.ProcessTransfer(ctx, TransferRequest{
		SourceAccountNumber:      "2024111111",
		DestinationAccountNumber: "2024222222",
		Amount:                   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	destination, err := accountSvc.GetByNumber(ctx, "2024222222")
	require.NoError(t, err)
	assert.True(t, destination.AccountBalance.Equal(decimal.NewFromInt(50)))
}

func TestService_Deposit_AccountRemovedBeforeSettlement(t *testing.T) {
	repo := new(MockTransactionRepo)
	accounts := new(MockAccountService)
	svc := NewService(repo, accounts, nil, nil, Config{})

	accounts.On("GetByNumber", mock.Anything, "2024111111").Return(testAccount("2024111111", "a@example.com", 0), nil)
	repo.On("Deposit", mock.Anything, mock.Anything).Return(repositories.ErrAccountNotFound)

	_, err := svc.Deposit(context.Background(), DepositRequest{
		AccountNumber: "2024111111",
		Amount:        decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

type stalledAccountService struct{}

func (stalledAccountService) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestService_ProcessTransfer_DeadlineExpiry(t *testing.T) {
	svc := NewService(new(MockTransactionRepo), stalledAccountService{}, nil, nil, Config{
		ProcessingTimeout: time.Millisecond,
	})

	_, err := svc.ProcessTransfer(context.Background(), TransferRequest{
		SourceAccountNumber:      "2024111111",
		DestinationAccountNumber: "2024222222",
		Amount:                   decimal.NewFromInt(40),
	})
	assert.ErrorIs(t, err, ErrInternal)
}
