package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save persists an invoice and its line items. Revisions replace the
// stored items with the invoice's current set.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)

	db := sessionFor(ctx, r.db)
	if err := db.Where("invoice_id = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
		return err
	}
	if err := db.Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.Conflictf("Invoice for transaction %s already exists", invoice.TransactionID)
		}
		return err
	}
	return nil
}

// FindByTransactionID finds the invoice belonging to a transaction,
// loading the full graph down to the client's banking details.
func (r *GormInvoiceRepository) FindByTransactionID(ctx context.Context, trxnID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := sessionFor(ctx, r.db).
		Preload("Transaction.Client.BankingDetails.BankName").
		Preload("Transaction.PaymentMethod").
		Preload("Items").
		First(&model, "transaction_id = ?", trxnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices matching the filter, joined against their
// transactions for reference and final-state constraints. Returns the
// page of invoices and the total match count.
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]*billing.Invoice, int64, error) {
	filter.Normalize()

	query := sessionFor(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Joins("JOIN transactions ON transactions.id = invoices.transaction_id")

	if filter.TrxnReference != "" {
		query = query.Where("transactions.trxn_reference = ?", filter.TrxnReference)
	}
	if filter.IsFinalState != nil {
		query = query.Where("transactions.is_final_state = ?", *filter.IsFinalState)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sort column is taken from a fixed whitelist, never from raw input.
	orderBy := "invoices.created_at DESC"
	if filter.SortBy == billing.SortByExpiresAt {
		orderBy = "transactions.expires_at DESC"
	}

	var invoiceModels []models.InvoiceModel
	if err := query.
		Preload("Transaction.Client.BankingDetails.BankName").
		Preload("Transaction.PaymentMethod").
		Preload("Items").
		Order(orderBy).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]*billing.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, invoiceModels[i].ToDomain())
	}
	return invoices, total, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
