// Package directory holds the application services for reference data:
// banks, banking details, clients and payment methods. Reads go through
// the cache; reference listings are cached without expiry and reset on
// the rare write paths.
package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const banksCacheKey = "banks:all"

// BankService manages the seeded bank reference data.
type BankService struct {
	banks  directory.BankNameRepository
	cache  cache.Store
	logger *zap.Logger
}

// NewBankService creates a new BankService
func NewBankService(banks directory.BankNameRepository, store cache.Store, logger *zap.Logger) *BankService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankService{banks: banks, cache: store, logger: logger}
}

// Create registers a bank and resets the cached listing.
func (s *BankService) Create(ctx context.Context, name, branchCode string) (*directory.BankName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Bank name is required")
	}

	bank := directory.NewBankName(name, branchCode)
	if err := s.banks.Save(ctx, bank); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, banksCacheKey); err != nil {
		s.logger.Warn("Failed to reset bank listing cache", zap.Error(err))
	}

	s.logger.Info("Bank created",
		zap.String("name", bank.Name),
		zap.String("branch_code", bank.BranchCode))
	return bank, nil
}

// FindAll returns all banks, cached without expiry.
func (s *BankService) FindAll(ctx context.Context) ([]*directory.BankName, error) {
	cached, ok, err := cache.GetJSON[[]*directory.BankName](ctx, s.cache, banksCacheKey)
	if err != nil {
		s.logger.Warn("Failed to read bank listing from cache", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	banks, err := s.banks.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, banksCacheKey, banks, cache.NoExpiry); err != nil {
		s.logger.Warn("Failed to cache bank listing", zap.Error(err))
	}
	return banks, nil
}

// GetByName finds a bank by exact name; NotFound when absent.
func (s *BankService) GetByName(ctx context.Context, name string) (*directory.BankName, error) {
	bank, err := s.banks.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, shared.NotFoundf("Bank %s not found", name)
	}
	return bank, nil
}

// Search runs a case-insensitive partial match over bank names.
func (s *BankService) Search(ctx context.Context, name string) ([]*directory.BankName, error) {
	return s.banks.SearchByName(ctx, strings.TrimSpace(name))
}
