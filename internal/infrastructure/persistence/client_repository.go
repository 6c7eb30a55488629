package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Save persists a client. Email and phone number carry unique indexes,
// so duplicates surface as conflicts.
func (r *GormClientRepository) Save(ctx context.Context, client *directory.Client) error {
	var model models.ClientModel
	model.FromDomain(client)

	if err := sessionFor(ctx, r.db).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Client with email %s already exists", client.Email)
		}
		return err
	}
	return nil
}

// FindByEmail finds a client by email, loading banking details.
// Matching is case-insensitive; emails are stored lowercased.
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*directory.Client, error) {
	var model models.ClientModel
	if err := sessionFor(ctx, r.db).
		Preload("BankingDetails.BankName").
		First(&model, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search runs a case-insensitive partial match against the chosen column.
func (r *GormClientRepository) Search(ctx context.Context, field directory.SearchField, value string) ([]*directory.Client, error) {
	column := "email"
	if field == directory.SearchByPhoneNumber {
		column = "phone_number"
	}

	var clientModels []models.ClientModel
	if err := sessionFor(ctx, r.db).
		Preload("BankingDetails.BankName").
		Where(column+" ILIKE ?", "%"+value+"%").
		Order("full_name ASC").
		Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]*directory.Client, 0, len(clientModels))
	for i := range clientModels {
		clients = append(clients, clientModels[i].ToDomain())
	}
	return clients, nil
}

// Ensure GormClientRepository implements ClientRepository
var _ directory.ClientRepository = (*GormClientRepository)(nil)
