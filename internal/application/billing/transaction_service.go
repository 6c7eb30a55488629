package billing

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appsettings "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const (
	transactionCachePrefix = "transaction:"

	// DefaultExpiryDays is the fallback for trx.expiry.days.
	DefaultExpiryDays = "6"
)

// CreateTransactionInput carries the data for opening a transaction.
type CreateTransactionInput struct {
	ClientEmail   string
	Amount        decimal.Decimal
	PaymentMethod directory.MethodType
	Status        billing.TransactionStatus
}

// UpdateTransactionInput is a partial update: nil fields are left
// untouched. Only amount and status are mutable.
type UpdateTransactionInput struct {
	Amount *decimal.Decimal
	Status *billing.TransactionStatus
}

// TransactionService manages the transaction lifecycle.
type TransactionService struct {
	trxns   billing.TransactionRepository
	clients ClientDirectory
	methods PaymentMethodDirectory
	config  ConfigResolver
	refs    *billing.ReferenceGenerator
	cache   cache.Store
	logger  *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	trxns billing.TransactionRepository,
	clients ClientDirectory,
	methods PaymentMethodDirectory,
	config ConfigResolver,
	store cache.Store,
	logger *zap.Logger,
) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{
		trxns:   trxns,
		clients: clients,
		methods: methods,
		config:  config,
		refs:    billing.NewReferenceGenerator(trxns),
		cache:   store,
		logger:  logger,
	}
}

// Create opens a transaction for an existing client and payment method
// and returns its freshly generated reference. Expiry comes from the
// trx.expiry.days setting.
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (string, error) {
	status := input.Status
	if status == "" {
		status = billing.StatusPending
	}
	if !status.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Unknown transaction status: "+string(status))
	}

	client, err := s.clients.FindByEmail(ctx, input.ClientEmail)
	if err != nil {
		return "", err
	}

	method, err := s.methods.FindByName(ctx, input.PaymentMethod)
	if err != nil {
		return "", err
	}

	reference, err := s.refs.Generate(ctx)
	if err != nil {
		return "", err
	}

	trxn := billing.NewTransaction(reference, client, input.Amount, method, status, s.expiryDays(ctx))
	if err := s.trxns.Save(ctx, trxn); err != nil {
		return "", err
	}

	s.cacheTransaction(ctx, trxn)

	s.logger.Info("Transaction created",
		zap.String("trxn_reference", reference),
		zap.String("client_email", client.Email),
		zap.String("status", string(status)))
	return reference, nil
}

// FindByReference is a cache-aside read with the client and payment
// method joined; NotFound when absent from both cache and store.
func (s *TransactionService) FindByReference(ctx context.Context, reference string) (*billing.Transaction, error) {
	key := transactionCachePrefix + reference

	cached, ok, err := cache.GetJSON[*billing.Transaction](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read transaction from cache",
			zap.String("trxn_reference", reference),
			zap.Error(err))
	}
	if ok && cached != nil {
		return cached, nil
	}

	trxn, err := s.trxns.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if trxn == nil {
		return nil, shared.NotFoundf("Transaction with reference %s not found", reference)
	}

	s.cacheTransaction(ctx, trxn)
	return trxn, nil
}

// UpdateByReference applies a partial update to an existing transaction.
// The final-state flag is rederived from the new status, and the cache
// entry is written through.
func (s *TransactionService) UpdateByReference(ctx context.Context, reference string, input UpdateTransactionInput) (*billing.Transaction, error) {
	trxn, err := s.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	amount := trxn.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}
	status := trxn.Status
	if input.Status != nil {
		status = *input.Status
	}

	if err := trxn.Apply(amount, status); err != nil {
		return nil, err
	}
	if err := s.trxns.Save(ctx, trxn); err != nil {
		return nil, err
	}

	s.cacheTransaction(ctx, trxn)

	s.logger.Info("Transaction updated",
		zap.String("trxn_reference", reference),
		zap.String("status", string(trxn.Status)),
		zap.Bool("is_final_state", trxn.IsFinalState))
	return trxn, nil
}

func (s *TransactionService) cacheTransaction(ctx context.Context, trxn *billing.Transaction) {
	key := transactionCachePrefix + trxn.TrxnReference
	if err := cache.SetJSON(ctx, s.cache, key, trxn, cache.NoExpiry); err != nil {
		s.logger.Warn("Failed to cache transaction",
			zap.String("trxn_reference", trxn.TrxnReference),
			zap.Error(err))
	}
}

func (s *TransactionService) expiryDays(ctx context.Context) int {
	cfg := s.config.GetByName(ctx, appsettings.ConfigTrxnExpiryDays, DefaultExpiryDays)

	days, err := strconv.Atoi(cfg.Value)
	if err != nil || days <= 0 {
		s.logger.Warn("Expiry days setting is not a positive integer, using fallback",
			zap.String("value", cfg.Value))
		days, _ = strconv.Atoi(DefaultExpiryDays)
	}
	return days
}
