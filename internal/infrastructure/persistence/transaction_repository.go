package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save persists a transaction, inserting or updating by primary key.
// A unique-index violation on the reference surfaces as a conflict.
func (r *GormTransactionRepository) Save(ctx context.Context, trxn *billing.Transaction) error {
	var model models.TransactionModel
	model.FromDomain(trxn)

	if err := sessionFor(ctx, r.db).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Transaction with reference %s already exists", trxn.TrxnReference)
		}
		return err
	}
	return nil
}

// FindByReference finds a transaction by its reference, loading the
// client (with banking details) and payment method.
func (r *GormTransactionRepository) FindByReference(ctx context.Context, reference string) (*billing.Transaction, error) {
	var model models.TransactionModel
	if err := sessionFor(ctx, r.db).
		Preload("Client.BankingDetails.BankName").
		Preload("PaymentMethod").
		First(&model, "trxn_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByReference reports whether a transaction with the given
// reference exists.
func (r *GormTransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := sessionFor(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("trxn_reference = ?", reference).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ billing.TransactionRepository = (*GormTransactionRepository)(nil)
