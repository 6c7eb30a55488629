package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormBankingDetailsRepository implements BankingDetailsRepository using GORM
type GormBankingDetailsRepository struct {
	db *gorm.DB
}

// NewGormBankingDetailsRepository creates a new GormBankingDetailsRepository
func NewGormBankingDetailsRepository(db *gorm.DB) *GormBankingDetailsRepository {
	return &GormBankingDetailsRepository{db: db}
}

// Save persists banking details. Account numbers are unique.
func (r *GormBankingDetailsRepository) Save(ctx context.Context, details *directory.BankingDetails) error {
	var model models.BankingDetailsModel
	model.FromDomain(details)

	if err := sessionFor(ctx, r.db).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Banking details for account %s already exist", details.AccountNumber)
		}
		return err
	}
	return nil
}

// FindByAccountNumber finds banking details by account number,
// loading the bank.
func (r *GormBankingDetailsRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*directory.BankingDetails, error) {
	var model models.BankingDetailsModel
	if err := sessionFor(ctx, r.db).
		Preload("BankName").
		First(&model, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormBankingDetailsRepository implements BankingDetailsRepository
var _ directory.BankingDetailsRepository = (*GormBankingDetailsRepository)(nil)
