package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

type mockBankNameRepo struct {
	mock.Mock
}

func (m *mockBankNameRepo) Save(ctx context.Context, bank *directory.BankName) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *mockBankNameRepo) FindAll(ctx context.Context) ([]*directory.BankName, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directory.BankName), args.Error(1)
}

func (m *mockBankNameRepo) FindByName(ctx context.Context, name string) (*directory.BankName, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.BankName), args.Error(1)
}

func (m *mockBankNameRepo) SearchByName(ctx context.Context, name string) ([]*directory.BankName, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directory.BankName), args.Error(1)
}

func newBankService(t *testing.T) (*BankService, *mockBankNameRepo) {
	t.Helper()
	repo := new(mockBankNameRepo)
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewBankService(repo, store, nil), repo
}

func TestBankService_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the listing across reads", func(t *testing.T) {
		svc, repo := newBankService(t)
		seeded := []*directory.BankName{
			directory.NewBankName("Capitec", "7827"),
			directory.NewBankName("FNB", "9012"),
		}
		repo.On("FindAll", ctx).Return(seeded, nil).Once()

		first, err := svc.FindAll(ctx)
		require.NoError(t, err)
		second, err := svc.FindAll(ctx)
		require.NoError(t, err)

		assert.Len(t, first, 2)
		assert.Len(t, second, 2)
		repo.AssertNumberOfCalls(t, "FindAll", 1)
	})
}

func TestBankService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("partial case-insensitive match returns the seeded bank", func(t *testing.T) {
		svc, repo := newBankService(t)
		repo.On("SearchByName", ctx, "capitec").
			Return([]*directory.BankName{directory.NewBankName("Capitec", "7827")}, nil).Once()

		banks, err := svc.Search(ctx, "capitec")

		require.NoError(t, err)
		require.Len(t, banks, 1)
		assert.Equal(t, "Capitec", banks[0].Name)
	})
}

func TestBankService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newBankService(t)

		_, err := svc.Create(ctx, "  ", "1234")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("resets the cached listing", func(t *testing.T) {
		svc, repo := newBankService(t)
		repo.On("FindAll", ctx).Return([]*directory.BankName{}, nil).Twice()
		repo.On("Save", ctx, mock.AnythingOfType("*directory.BankName")).Return(nil).Once()

		_, err := svc.FindAll(ctx)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "Bidvest", "5501")
		require.NoError(t, err)

		_, err = svc.FindAll(ctx)
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "FindAll", 2)
	})
}

func TestBankService_GetByName(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound when absent", func(t *testing.T) {
		svc, repo := newBankService(t)
		repo.On("FindByName", ctx, "Ghost Bank").Return(nil, nil).Once()

		_, err := svc.GetByName(ctx, "Ghost Bank")
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

var _ directory.BankNameRepository = (*mockBankNameRepo)(nil)
