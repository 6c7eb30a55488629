package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const bankingDetailsCachePrefix = "bankingDetails:"

// BankingDetailsService manages client bank accounts.
type BankingDetailsService struct {
	details directory.BankingDetailsRepository
	banks   directory.BankNameRepository
	cache   cache.Store
	logger  *zap.Logger
}

// NewBankingDetailsService creates a new BankingDetailsService
func NewBankingDetailsService(
	details directory.BankingDetailsRepository,
	banks directory.BankNameRepository,
	store cache.Store,
	logger *zap.Logger,
) *BankingDetailsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankingDetailsService{details: details, banks: banks, cache: store, logger: logger}
}

// Create registers a bank account for the named bank. Idempotent: when
// the account number already exists the stored record is returned.
func (s *BankingDetailsService) Create(ctx context.Context, bankName, accountNumber string) (*directory.BankingDetails, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Account number is required")
	}

	existing, err := s.details.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	bank, err := s.banks.FindByName(ctx, bankName)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, shared.NotFoundf("Bank %s not found", bankName)
	}

	details := directory.NewBankingDetails(accountNumber, bank)
	if err := s.details.Save(ctx, details); err != nil {
		// Lost a race with a concurrent create; re-read the winner.
		if shared.IsConflict(err) {
			return s.details.FindByAccountNumber(ctx, accountNumber)
		}
		return nil, err
	}

	s.logger.Info("Banking details created",
		zap.String("account_number", accountNumber),
		zap.String("bank", bank.Name))
	return details, nil
}

// FindByAccountNumber is a cache-aside read; NotFound when absent.
func (s *BankingDetailsService) FindByAccountNumber(ctx context.Context, accountNumber string) (*directory.BankingDetails, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	key := bankingDetailsCachePrefix + accountNumber

	cached, ok, err := cache.GetJSON[*directory.BankingDetails](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read banking details from cache", zap.Error(err))
	}
	if ok && cached != nil {
		return cached, nil
	}

	details, err := s.details.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, shared.NotFoundf("Banking details for account %s not found", accountNumber)
	}

	if err := cache.SetJSON(ctx, s.cache, key, details, cache.NoExpiry); err != nil {
		s.logger.Warn("Failed to cache banking details", zap.Error(err))
	}
	return details, nil
}
