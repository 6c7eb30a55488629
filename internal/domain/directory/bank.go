package directory

import (
	"github.com/google/uuid"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

// BankName is a bank known to the system, seeded as reference data.
type BankName struct {
	shared.BaseEntity
	Name       string `json:"name"`
	BranchCode string `json:"branchCode"`
}

// NewBankName creates a bank name record.
func NewBankName(name, branchCode string) *BankName {
	return &BankName{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		BranchCode: branchCode,
	}
}

// BankingDetails ties a unique account number to a bank.
type BankingDetails struct {
	shared.BaseEntity
	AccountNumber string    `json:"accountNumber"`
	BankNameID    uuid.UUID `json:"bankNameId"`
	BankName      *BankName `json:"bankName,omitempty"`
}

// NewBankingDetails creates a banking details record for an existing bank.
func NewBankingDetails(accountNumber string, bank *BankName) *BankingDetails {
	b := &BankingDetails{
		BaseEntity:    shared.NewBaseEntity(),
		AccountNumber: accountNumber,
	}
	if bank != nil {
		b.BankNameID = bank.ID
		b.BankName = bank
	}
	return b
}
