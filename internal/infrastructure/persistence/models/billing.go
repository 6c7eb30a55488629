package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
)

// TransactionModel is the persistence model for the Transaction domain entity.
type TransactionModel struct {
	BaseModel
	TrxnReference   string              `gorm:"type:char(15);not null;uniqueIndex:idx_transactions_reference"`
	ClientID        uuid.UUID           `gorm:"type:uuid;not null"`
	Client          *ClientModel        `gorm:"foreignKey:ClientID"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentMethodID uuid.UUID           `gorm:"type:uuid;not null"`
	PaymentMethod   *PaymentMethodModel `gorm:"foreignKey:PaymentMethodID"`
	Status          string              `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	IsFinalState    bool                `gorm:"not null;default:false;index"`
	ExpiresAt       time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *billing.Transaction {
	trxn := &billing.Transaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		TrxnReference:   m.TrxnReference,
		ClientID:        m.ClientID,
		Amount:          m.Amount,
		PaymentMethodID: m.PaymentMethodID,
		Status:          billing.TransactionStatus(m.Status),
		IsFinalState:    m.IsFinalState,
		ExpiresAt:       m.ExpiresAt,
	}
	if m.Client != nil {
		trxn.Client = m.Client.ToDomain()
	}
	if m.PaymentMethod != nil {
		trxn.PaymentMethod = m.PaymentMethod.ToDomain()
	}
	return trxn
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *billing.Transaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.TrxnReference = t.TrxnReference
	m.ClientID = t.ClientID
	m.Amount = t.Amount
	m.PaymentMethodID = t.PaymentMethodID
	m.Status = string(t.Status)
	m.IsFinalState = t.IsFinalState
	m.ExpiresAt = t.ExpiresAt
}

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	TransactionID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_transaction"`
	Transaction   *TransactionModel   `gorm:"foreignKey:TransactionID"`
	ClientID      uuid.UUID           `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status        string              `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Reason        string              `gorm:"type:text"`
	ExpiresAt     time.Time           `gorm:"not null"`
	Items         []*InvoiceItemModel `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		TransactionID: m.TransactionID,
		ClientID:      m.ClientID,
		Amount:        m.Amount,
		Status:        billing.TransactionStatus(m.Status),
		Reason:        m.Reason,
		ExpiresAt:     m.ExpiresAt,
	}
	if m.Transaction != nil {
		inv.Transaction = m.Transaction.ToDomain()
	}
	if len(m.Items) > 0 {
		inv.Items = make([]*billing.InvoiceItem, 0, len(m.Items))
		for _, item := range m.Items {
			inv.Items = append(inv.Items, item.ToDomain())
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.TransactionID = inv.TransactionID
	m.ClientID = inv.ClientID
	m.Amount = inv.Amount
	m.Status = string(inv.Status)
	m.Reason = inv.Reason
	m.ExpiresAt = inv.ExpiresAt
	m.Items = make([]*InvoiceItemModel, 0, len(inv.Items))
	for _, item := range inv.Items {
		itemModel := &InvoiceItemModel{}
		itemModel.FromDomain(item)
		m.Items = append(m.Items, itemModel)
	}
}

// InvoiceItemModel is the persistence model for the InvoiceItem domain entity.
type InvoiceItemModel struct {
	BaseModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU         string          `gorm:"type:varchar(100);not null;column:sku;uniqueIndex:idx_invoice_items_sku"`
	ItemName    string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem entity.
func (m *InvoiceItemModel) ToDomain() *billing.InvoiceItem {
	return &billing.InvoiceItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		SKU:         m.SKU,
		ItemName:    m.ItemName,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
	}
}

// FromDomain populates the persistence model from a domain InvoiceItem entity.
func (m *InvoiceItemModel) FromDomain(item *billing.InvoiceItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.InvoiceID = item.InvoiceID
	m.SKU = item.SKU
	m.ItemName = item.ItemName
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.TotalPrice = item.TotalPrice
}
