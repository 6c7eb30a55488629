package directory

import "github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"

// MethodType enumerates the accepted payment methods. These mirror the
// seeded payment_methods rows; the value is stored as-is, spaces included.
type MethodType string

const (
	MethodCash       MethodType = "CASH"
	MethodEFT        MethodType = "EFT"
	MethodCreditCard MethodType = "CREDIT CARD"
	MethodDebitCard  MethodType = "DEBIT CARD"
	MethodCredit     MethodType = "CREDIT"
)

// IsValid checks if the method type is one of the seeded methods.
func (m MethodType) IsValid() bool {
	switch m {
	case MethodCash, MethodEFT, MethodCreditCard, MethodDebitCard, MethodCredit:
		return true
	}
	return false
}

// String returns the string representation of MethodType
func (m MethodType) String() string {
	return string(m)
}

// PaymentMethod is a seeded reference row for an accepted payment method.
type PaymentMethod struct {
	shared.BaseEntity
	Name MethodType `json:"name"`
}
