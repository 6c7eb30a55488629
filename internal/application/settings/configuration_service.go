// Package settings provides the configuration resolver: named runtime
// tunables read through the cache with caller-supplied fallbacks.
package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

// Well-known configuration names read by the billing services.
const (
	ConfigVATPercentage   = "trx.percentage.vat"
	ConfigBankChargesRate = "trx.percentage.bank.charges"
	ConfigTrxnExpiryDays  = "trx.expiry.days"

	configCacheKeyPrefix  = "configuration:"
	syntheticRecordAuthor = "SYSTEM"
)

// ConfigurationService resolves configuration rows with fallback defaults.
// Resolution never fails: a missing row yields a synthetic inactive record
// carrying the fallback, and an inactive row has its value overridden with
// the fallback so callers never act on a disabled setting.
type ConfigurationService struct {
	repo   settings.ConfigurationRepository
	cache  cache.Store
	logger *zap.Logger
}

// NewConfigurationService creates a new ConfigurationService
func NewConfigurationService(repo settings.ConfigurationRepository, store cache.Store, logger *zap.Logger) *ConfigurationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigurationService{repo: repo, cache: store, logger: logger}
}

// GetByName resolves a configuration by name. Every lookup, hit or miss,
// is cached without expiry, so external edits to a row are not observed
// until the entry is explicitly cleared or the process restarts.
func (s *ConfigurationService) GetByName(ctx context.Context, name, fallback string) *settings.Configuration {
	key := configCacheKeyPrefix + name

	cached, ok, err := cache.GetJSON[*settings.Configuration](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read configuration from cache",
			zap.String("name", name),
			zap.Error(err))
	}
	if ok && cached != nil {
		return withFallback(cached, fallback)
	}

	cfg, err := s.repo.FindByName(ctx, name)
	if err != nil {
		s.logger.Error("Failed to load configuration, using fallback",
			zap.String("name", name),
			zap.String("fallback", fallback),
			zap.Error(err))
		return syntheticRecord(name, fallback)
	}
	if cfg == nil {
		s.logger.Info("Configuration not found, using fallback",
			zap.String("name", name),
			zap.String("fallback", fallback))
		cfg = syntheticRecord(name, fallback)
	}

	if err := cache.SetJSON(ctx, s.cache, key, cfg, cache.NoExpiry); err != nil {
		s.logger.Warn("Failed to cache configuration",
			zap.String("name", name),
			zap.Error(err))
	}

	return withFallback(cfg, fallback)
}

// withFallback returns a copy of cfg with the value replaced by the
// fallback when the row is inactive. The cached record keeps its stored
// value; only the caller-facing view is overridden.
func withFallback(cfg *settings.Configuration, fallback string) *settings.Configuration {
	if cfg.Active {
		return cfg
	}
	masked := *cfg
	masked.Value = fallback
	return &masked
}

func syntheticRecord(name, fallback string) *settings.Configuration {
	cfg := settings.NewConfiguration(name, fallback, syntheticRecordAuthor)
	cfg.Active = false
	return cfg
}
