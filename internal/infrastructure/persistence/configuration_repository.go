package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormConfigurationRepository implements ConfigurationRepository using GORM
type GormConfigurationRepository struct {
	db *gorm.DB
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db}
}

// Save persists a configuration row. Names are unique.
func (r *GormConfigurationRepository) Save(ctx context.Context, cfg *settings.Configuration) error {
	var model models.ConfigurationModel
	model.FromDomain(cfg)

	if err := sessionFor(ctx, r.db).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Configuration %s already exists", cfg.Name)
		}
		return err
	}
	return nil
}

// FindByName finds a configuration row by name, active or not.
func (r *GormConfigurationRepository) FindByName(ctx context.Context, name string) (*settings.Configuration, error) {
	var model models.ConfigurationModel
	if err := sessionFor(ctx, r.db).
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormConfigurationRepository implements ConfigurationRepository
var _ settings.ConfigurationRepository = (*GormConfigurationRepository)(nil)
