package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Save(ctx context.Context, client *directory.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepo) FindByEmail(ctx context.Context, email string) (*directory.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *mockClientRepo) Search(ctx context.Context, field directory.SearchField, value string) ([]*directory.Client, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directory.Client), args.Error(1)
}

type mockBankingDetailsRepo struct {
	mock.Mock
}

func (m *mockBankingDetailsRepo) Save(ctx context.Context, details *directory.BankingDetails) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *mockBankingDetailsRepo) FindByAccountNumber(ctx context.Context, accountNumber string) (*directory.BankingDetails, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.BankingDetails), args.Error(1)
}

func newClientService(t *testing.T) (*ClientService, *mockClientRepo, *mockBankingDetailsRepo, *mockBankNameRepo) {
	t.Helper()
	clients := new(mockClientRepo)
	details := new(mockBankingDetailsRepo)
	banks := new(mockBankNameRepo)
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	detailsSvc := NewBankingDetailsService(details, banks, store, nil)
	return NewClientService(clients, detailsSvc, store, time.Hour, nil), clients, details, banks
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates client with new banking details", func(t *testing.T) {
		svc, clients, details, banks := newClientService(t)
		capitec := directory.NewBankName("Capitec", "7827")

		clients.On("FindByEmail", ctx, "jane.smith@example.com").Return(nil, nil).Once()
		details.On("FindByAccountNumber", ctx, "9876543210").Return(nil, nil).Once()
		banks.On("FindByName", ctx, "Capitec").Return(capitec, nil).Once()
		details.On("Save", ctx, mock.AnythingOfType("*directory.BankingDetails")).Return(nil).Once()
		clients.On("Save", ctx, mock.AnythingOfType("*directory.Client")).Return(nil).Once()

		client, err := svc.Create(ctx, CreateClientInput{
			FullName:      "Jane Smith",
			Email:         "Jane.Smith@Example.com",
			PhoneNumber:   "+27987654321",
			BankName:      "Capitec",
			AccountNumber: "9876543210",
		})

		require.NoError(t, err)
		assert.Equal(t, "jane.smith@example.com", client.Email)
		require.NotNil(t, client.BankingDetails)
		assert.Equal(t, "9876543210", client.BankingDetails.AccountNumber)
		clients.AssertExpectations(t)
		details.AssertExpectations(t)
	})

	t.Run("reuses existing banking details", func(t *testing.T) {
		svc, clients, details, _ := newClientService(t)
		existing := directory.NewBankingDetails("1234567890", directory.NewBankName("FNB", "9012"))

		clients.On("FindByEmail", ctx, "john.doe@example.com").Return(nil, nil).Once()
		details.On("FindByAccountNumber", ctx, "1234567890").Return(existing, nil).Once()
		clients.On("Save", ctx, mock.AnythingOfType("*directory.Client")).Return(nil).Once()

		client, err := svc.Create(ctx, CreateClientInput{
			FullName:      "John Doe",
			Email:         "john.doe@example.com",
			PhoneNumber:   "+27123456789",
			BankName:      "FNB",
			AccountNumber: "1234567890",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, client.BankingDetailsID)
		details.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc, clients, _, _ := newClientService(t)
		existing := directory.NewClient("Jane Smith", "jane.smith@example.com", "+27987654321", nil)

		clients.On("FindByEmail", ctx, "jane.smith@example.com").Return(existing, nil).Once()

		_, err := svc.Create(ctx, CreateClientInput{Email: "jane.smith@example.com"})
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("unknown bank is NotFound", func(t *testing.T) {
		svc, clients, details, banks := newClientService(t)

		clients.On("FindByEmail", ctx, "a@b.co").Return(nil, nil).Once()
		details.On("FindByAccountNumber", ctx, "42").Return(nil, nil).Once()
		banks.On("FindByName", ctx, "Ghost Bank").Return(nil, nil).Once()

		_, err := svc.Create(ctx, CreateClientInput{
			Email:         "a@b.co",
			BankName:      "Ghost Bank",
			AccountNumber: "42",
		})
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestClientService_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is served from cache", func(t *testing.T) {
		svc, clients, _, _ := newClientService(t)
		stored := directory.NewClient("Jane Smith", "jane.smith@example.com", "+27987654321", nil)

		clients.On("FindByEmail", ctx, "jane.smith@example.com").Return(stored, nil).Once()

		first, err := svc.FindByEmail(ctx, "jane.smith@example.com")
		require.NoError(t, err)
		second, err := svc.FindByEmail(ctx, "Jane.Smith@example.com")
		require.NoError(t, err)

		assert.Equal(t, first.Email, second.Email)
		clients.AssertNumberOfCalls(t, "FindByEmail", 1)
	})

	t.Run("NotFound when absent", func(t *testing.T) {
		svc, clients, _, _ := newClientService(t)
		clients.On("FindByEmail", ctx, "missing@example.com").Return(nil, nil).Once()

		_, err := svc.FindByEmail(ctx, "missing@example.com")
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestClientService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown field", func(t *testing.T) {
		svc, _, _, _ := newClientService(t)

		_, err := svc.Search(ctx, directory.SearchField("SURNAME"), "doe")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("delegates valid field to the repository", func(t *testing.T) {
		svc, clients, _, _ := newClientService(t)
		clients.On("Search", ctx, directory.SearchByPhoneNumber, "2712").
			Return([]*directory.Client{}, nil).Once()

		_, err := svc.Search(ctx, directory.SearchByPhoneNumber, " 2712 ")
		require.NoError(t, err)
		clients.AssertExpectations(t)
	})
}

var (
	_ directory.ClientRepository         = (*mockClientRepo)(nil)
	_ directory.BankingDetailsRepository = (*mockBankingDetailsRepo)(nil)
)
