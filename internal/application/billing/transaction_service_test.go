package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Save(ctx context.Context, trxn *billing.Transaction) error {
	args := m.Called(ctx, trxn)
	return args.Error(0)
}

func (m *mockTransactionRepo) FindByReference(ctx context.Context, reference string) (*billing.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

type mockClientDirectory struct {
	mock.Mock
}

func (m *mockClientDirectory) FindByEmail(ctx context.Context, email string) (*directory.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

type mockPaymentMethodDirectory struct {
	mock.Mock
}

func (m *mockPaymentMethodDirectory) FindByName(ctx context.Context, name directory.MethodType) (*directory.PaymentMethod, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.PaymentMethod), args.Error(1)
}

// stubConfig resolves every name to its fallback, as if no rows existed.
type stubConfig struct {
	values map[string]string
}

func (s *stubConfig) GetByName(_ context.Context, name, fallback string) *settings.Configuration {
	if s.values != nil {
		if v, ok := s.values[name]; ok {
			return settings.NewConfiguration(name, v, "admin")
		}
	}
	cfg := settings.NewConfiguration(name, fallback, "SYSTEM")
	cfg.Active = false
	return cfg
}

type trxnServiceFixture struct {
	svc     *TransactionService
	repo    *mockTransactionRepo
	clients *mockClientDirectory
	methods *mockPaymentMethodDirectory
	config  *stubConfig
	store   *cache.MemoryStore
}

func newTransactionFixture(t *testing.T) *trxnServiceFixture {
	t.Helper()
	f := &trxnServiceFixture{
		repo:    new(mockTransactionRepo),
		clients: new(mockClientDirectory),
		methods: new(mockPaymentMethodDirectory),
		config:  &stubConfig{},
	}
	f.store = cache.NewMemoryStore()
	t.Cleanup(func() { f.store.Close() })
	f.svc = NewTransactionService(f.repo, f.clients, f.methods, f.config, f.store, nil)
	return f
}

func pendingTransaction(reference string) *billing.Transaction {
	client := directory.NewClient("Jane Smith", "jane.smith@example.com", "+27987654321", nil)
	method := &directory.PaymentMethod{BaseEntity: shared.NewBaseEntity(), Name: directory.MethodEFT}
	return billing.NewTransaction(reference, client, decimal.RequireFromString("116.00"), method, billing.StatusPending, 6)
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending transaction with default expiry", func(t *testing.T) {
		f := newTransactionFixture(t)
		client := directory.NewClient("Jane Smith", "jane.smith@example.com", "+27987654321", nil)
		method := &directory.PaymentMethod{BaseEntity: shared.NewBaseEntity(), Name: directory.MethodEFT}

		f.clients.On("FindByEmail", ctx, "jane.smith@example.com").Return(client, nil).Once()
		f.methods.On("FindByName", ctx, directory.MethodEFT).Return(method, nil).Once()
		f.repo.On("ExistsByReference", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

		var saved *billing.Transaction
		f.repo.On("Save", ctx, mock.AnythingOfType("*billing.Transaction")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.Transaction) }).
			Return(nil).Once()

		reference, err := f.svc.Create(ctx, CreateTransactionInput{
			ClientEmail:   "jane.smith@example.com",
			Amount:        decimal.RequireFromString("116.00"),
			PaymentMethod: directory.MethodEFT,
		})

		require.NoError(t, err)
		assert.True(t, billing.IsValidReference(reference))
		require.NotNil(t, saved)
		assert.Equal(t, billing.StatusPending, saved.Status)
		assert.False(t, saved.IsFinalState)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 6), saved.ExpiresAt, 2*time.Second)
	})

	t.Run("expiry days read from active configuration", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.config.values = map[string]string{"trx.expiry.days": "10"}
		client := directory.NewClient("Jane Smith", "jane.smith@example.com", "+27987654321", nil)
		method := &directory.PaymentMethod{BaseEntity: shared.NewBaseEntity(), Name: directory.MethodCash}

		f.clients.On("FindByEmail", ctx, "jane.smith@example.com").Return(client, nil).Once()
		f.methods.On("FindByName", ctx, directory.MethodCash).Return(method, nil).Once()
		f.repo.On("ExistsByReference", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

		var saved *billing.Transaction
		f.repo.On("Save", ctx, mock.AnythingOfType("*billing.Transaction")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.Transaction) }).
			Return(nil).Once()

		_, err := f.svc.Create(ctx, CreateTransactionInput{
			ClientEmail:   "jane.smith@example.com",
			Amount:        decimal.RequireFromString("50.00"),
			PaymentMethod: directory.MethodCash,
		})

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), saved.ExpiresAt, 2*time.Second)
	})

	t.Run("missing client aborts before touching the repository", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.clients.On("FindByEmail", ctx, "ghost@example.com").
			Return(nil, shared.NotFoundf("Client with email %s not found", "ghost@example.com")).Once()

		_, err := f.svc.Create(ctx, CreateTransactionInput{
			ClientEmail:   "ghost@example.com",
			PaymentMethod: directory.MethodEFT,
		})

		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newTransactionFixture(t)

		_, err := f.svc.Create(ctx, CreateTransactionInput{
			ClientEmail: "jane.smith@example.com",
			Status:      billing.TransactionStatus("VOID"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestTransactionService_FindByReference(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is a cache hit", func(t *testing.T) {
		f := newTransactionFixture(t)
		stored := pendingTransaction("123456789012345")
		f.repo.On("FindByReference", ctx, "123456789012345").Return(stored, nil).Once()

		first, err := f.svc.FindByReference(ctx, "123456789012345")
		require.NoError(t, err)
		second, err := f.svc.FindByReference(ctx, "123456789012345")
		require.NoError(t, err)

		assert.Equal(t, first.TrxnReference, second.TrxnReference)
		assert.True(t, first.Amount.Equal(second.Amount))
		f.repo.AssertNumberOfCalls(t, "FindByReference", 1)
	})

	t.Run("NotFound when absent from cache and store", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.repo.On("FindByReference", ctx, "000000000000000").Return(nil, nil).Once()

		_, err := f.svc.FindByReference(ctx, "000000000000000")
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestTransactionService_UpdateByReference(t *testing.T) {
	ctx := context.Background()

	t.Run("status change to PAID flips the final-state flag", func(t *testing.T) {
		f := newTransactionFixture(t)
		stored := pendingTransaction("123456789012345")
		f.repo.On("FindByReference", ctx, "123456789012345").Return(stored, nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*billing.Transaction")).Return(nil).Once()

		paid := billing.StatusPaid
		updated, err := f.svc.UpdateByReference(ctx, "123456789012345", UpdateTransactionInput{Status: &paid})

		require.NoError(t, err)
		assert.Equal(t, billing.StatusPaid, updated.Status)
		assert.True(t, updated.IsFinalState)
	})

	t.Run("writes the update through the cache", func(t *testing.T) {
		f := newTransactionFixture(t)
		stored := pendingTransaction("123456789012345")
		f.repo.On("FindByReference", ctx, "123456789012345").Return(stored, nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*billing.Transaction")).Return(nil).Once()

		failed := billing.StatusFailed
		_, err := f.svc.UpdateByReference(ctx, "123456789012345", UpdateTransactionInput{Status: &failed})
		require.NoError(t, err)

		// Subsequent read must observe the new status without another store hit.
		fresh, err := f.svc.FindByReference(ctx, "123456789012345")
		require.NoError(t, err)
		assert.Equal(t, billing.StatusFailed, fresh.Status)
		assert.True(t, fresh.IsFinalState)
		f.repo.AssertNumberOfCalls(t, "FindByReference", 1)
	})

	t.Run("unknown reference fails with NotFound and persists nothing", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.repo.On("FindByReference", ctx, "999999999999999").Return(nil, nil).Once()

		paid := billing.StatusPaid
		_, err := f.svc.UpdateByReference(ctx, "999999999999999", UpdateTransactionInput{Status: &paid})

		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

var _ billing.TransactionRepository = (*mockTransactionRepo)(nil)
