package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const paymentMethodsCacheKey = "paymentMethods:all"

// PaymentMethodService serves the seeded payment methods.
type PaymentMethodService struct {
	methods directory.PaymentMethodRepository
	cache   cache.Store
	logger  *zap.Logger
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methods directory.PaymentMethodRepository, store cache.Store, logger *zap.Logger) *PaymentMethodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentMethodService{methods: methods, cache: store, logger: logger}
}

// FindAll returns all payment methods, cached without expiry.
func (s *PaymentMethodService) FindAll(ctx context.Context) ([]*directory.PaymentMethod, error) {
	cached, ok, err := cache.GetJSON[[]*directory.PaymentMethod](ctx, s.cache, paymentMethodsCacheKey)
	if err != nil {
		s.logger.Warn("Failed to read payment methods from cache", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	methods, err := s.methods.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, paymentMethodsCacheKey, methods, cache.NoExpiry); err != nil {
		s.logger.Warn("Failed to cache payment methods", zap.Error(err))
	}
	return methods, nil
}

// FindByName finds a payment method by name; NotFound when absent.
func (s *PaymentMethodService) FindByName(ctx context.Context, name directory.MethodType) (*directory.PaymentMethod, error) {
	method, err := s.methods.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, shared.NotFoundf("Payment method %s not found", name)
	}
	return method, nil
}
