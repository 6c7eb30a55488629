package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

// TransactionStatus represents the payment lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusPaid    TransactionStatus = "PAID"
	StatusFailed  TransactionStatus = "FAILED"
)

// IsValid checks if the status is one of the known lifecycle states.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// IsFinal reports whether the status terminates the lifecycle. Only
// PENDING is non-final; PAID and FAILED both are.
func (s TransactionStatus) IsFinal() bool {
	return s != StatusPending
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is a payment obligation owed by a client, identified
// externally by its TrxnReference. IsFinalState is always derived from
// Status and never set independently.
type Transaction struct {
	shared.BaseEntity
	TrxnReference   string                   `json:"trxnReference"`
	ClientID        uuid.UUID                `json:"clientId"`
	Client          *directory.Client        `json:"client,omitempty"`
	Amount          decimal.Decimal          `json:"amount"`
	PaymentMethodID uuid.UUID                `json:"paymentMethodId"`
	PaymentMethod   *directory.PaymentMethod `json:"paymentMethod,omitempty"`
	Status          TransactionStatus        `json:"status"`
	IsFinalState    bool                     `json:"isFinalState"`
	ExpiresAt       time.Time                `json:"expiresAt"`
}

// NewTransaction creates a transaction in the given status, expiring
// expiryDays from now.
func NewTransaction(reference string, client *directory.Client, amount decimal.Decimal, method *directory.PaymentMethod, status TransactionStatus, expiryDays int) *Transaction {
	t := &Transaction{
		BaseEntity:    shared.NewBaseEntity(),
		TrxnReference: reference,
		Amount:        amount,
		Status:        status,
		IsFinalState:  status.IsFinal(),
		ExpiresAt:     time.Now().AddDate(0, 0, expiryDays),
	}
	if client != nil {
		t.ClientID = client.ID
		t.Client = client
	}
	if method != nil {
		t.PaymentMethodID = method.ID
		t.PaymentMethod = method
	}
	return t
}

// Apply updates the amount and status together, keeping the derived
// final-state flag consistent with the new status.
func (t *Transaction) Apply(amount decimal.Decimal, status TransactionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unknown transaction status: "+string(status))
	}
	t.Amount = amount
	t.Status = status
	t.IsFinalState = status.IsFinal()
	t.Touch()
	return nil
}
