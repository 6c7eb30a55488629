package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormBankNameRepository implements BankNameRepository using GORM
type GormBankNameRepository struct {
	db *gorm.DB
}

// NewGormBankNameRepository creates a new GormBankNameRepository
func NewGormBankNameRepository(db *gorm.DB) *GormBankNameRepository {
	return &GormBankNameRepository{db: db}
}

// Save persists a bank name. Names are unique.
func (r *GormBankNameRepository) Save(ctx context.Context, bank *directory.BankName) error {
	var model models.BankNameModel
	model.FromDomain(bank)

	if err := sessionFor(ctx, r.db).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Bank %s already exists", bank.Name)
		}
		return err
	}
	return nil
}

// FindAll returns all banks ordered by name.
func (r *GormBankNameRepository) FindAll(ctx context.Context) ([]*directory.BankName, error) {
	var bankModels []models.BankNameModel
	if err := sessionFor(ctx, r.db).Order("name ASC").Find(&bankModels).Error; err != nil {
		return nil, err
	}

	banks := make([]*directory.BankName, 0, len(bankModels))
	for i := range bankModels {
		banks = append(banks, bankModels[i].ToDomain())
	}
	return banks, nil
}

// FindByName finds a bank by exact name, case-insensitively.
func (r *GormBankNameRepository) FindByName(ctx context.Context, name string) (*directory.BankName, error) {
	var model models.BankNameModel
	if err := sessionFor(ctx, r.db).
		First(&model, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SearchByName runs a case-insensitive partial match against bank names.
func (r *GormBankNameRepository) SearchByName(ctx context.Context, name string) ([]*directory.BankName, error) {
	var bankModels []models.BankNameModel
	if err := sessionFor(ctx, r.db).
		Where("name ILIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&bankModels).Error; err != nil {
		return nil, err
	}

	banks := make([]*directory.BankName, 0, len(bankModels))
	for i := range bankModels {
		banks = append(banks, bankModels[i].ToDomain())
	}
	return banks, nil
}

// Ensure GormBankNameRepository implements BankNameRepository
var _ directory.BankNameRepository = (*GormBankNameRepository)(nil)
