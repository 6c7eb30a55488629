package models

import (
	"github.com/google/uuid"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
)

// BankNameModel is the persistence model for the BankName domain entity.
type BankNameModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex:idx_bank_names_name"`
	BranchCode string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (BankNameModel) TableName() string {
	return "bank_names"
}

// ToDomain converts the persistence model to a domain BankName entity.
func (m *BankNameModel) ToDomain() *directory.BankName {
	return &directory.BankName{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		BranchCode: m.BranchCode,
	}
}

// FromDomain populates the persistence model from a domain BankName entity.
func (m *BankNameModel) FromDomain(b *directory.BankName) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.BranchCode = b.BranchCode
}

// BankingDetailsModel is the persistence model for the BankingDetails domain entity.
type BankingDetailsModel struct {
	BaseModel
	AccountNumber string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_banking_details_account"`
	BankNameID    uuid.UUID      `gorm:"type:uuid;not null"`
	BankName      *BankNameModel `gorm:"foreignKey:BankNameID"`
}

// TableName returns the table name for GORM
func (BankingDetailsModel) TableName() string {
	return "banking_details"
}

// ToDomain converts the persistence model to a domain BankingDetails entity.
func (m *BankingDetailsModel) ToDomain() *directory.BankingDetails {
	details := &directory.BankingDetails{
		BaseEntity:    m.BaseModel.ToDomain(),
		AccountNumber: m.AccountNumber,
		BankNameID:    m.BankNameID,
	}
	if m.BankName != nil {
		details.BankName = m.BankName.ToDomain()
	}
	return details
}

// FromDomain populates the persistence model from a domain BankingDetails entity.
func (m *BankingDetailsModel) FromDomain(d *directory.BankingDetails) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.AccountNumber = d.AccountNumber
	m.BankNameID = d.BankNameID
}

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	FullName         string               `gorm:"type:varchar(200);not null"`
	Email            string               `gorm:"type:varchar(200);not null;uniqueIndex:idx_clients_email"`
	PhoneNumber      string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_clients_phone"`
	BankingDetailsID uuid.UUID            `gorm:"type:uuid;not null"`
	BankingDetails   *BankingDetailsModel `gorm:"foreignKey:BankingDetailsID"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *directory.Client {
	client := &directory.Client{
		BaseEntity:       m.BaseModel.ToDomain(),
		FullName:         m.FullName,
		Email:            m.Email,
		PhoneNumber:      m.PhoneNumber,
		BankingDetailsID: m.BankingDetailsID,
	}
	if m.BankingDetails != nil {
		client.BankingDetails = m.BankingDetails.ToDomain()
	}
	return client
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *directory.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.FullName = c.FullName
	m.Email = c.Email
	m.PhoneNumber = c.PhoneNumber
	m.BankingDetailsID = c.BankingDetailsID
}

// PaymentMethodModel is the persistence model for the PaymentMethod domain entity.
type PaymentMethodModel struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_methods_name"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod entity.
func (m *PaymentMethodModel) ToDomain() *directory.PaymentMethod {
	return &directory.PaymentMethod{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       directory.MethodType(m.Name),
	}
}

// FromDomain populates the persistence model from a domain PaymentMethod entity.
func (m *PaymentMethodModel) FromDomain(p *directory.PaymentMethod) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = string(p.Name)
}
