package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindAll returns all payment methods ordered by name.
func (r *GormPaymentMethodRepository) FindAll(ctx context.Context) ([]*directory.PaymentMethod, error) {
	var methodModels []models.PaymentMethodModel
	if err := sessionFor(ctx, r.db).Order("name ASC").Find(&methodModels).Error; err != nil {
		return nil, err
	}

	methods := make([]*directory.PaymentMethod, 0, len(methodModels))
	for i := range methodModels {
		methods = append(methods, methodModels[i].ToDomain())
	}
	return methods, nil
}

// FindByName finds a payment method by its name.
func (r *GormPaymentMethodRepository) FindByName(ctx context.Context, name directory.MethodType) (*directory.PaymentMethod, error) {
	var model models.PaymentMethodModel
	if err := sessionFor(ctx, r.db).
		First(&model, "name = ?", string(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormPaymentMethodRepository implements PaymentMethodRepository
var _ directory.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
