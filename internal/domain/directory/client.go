// Package directory holds the reference-data side of the system: clients,
// their bank accounts, the known bank names and the accepted payment methods.
// Transactions and invoices point into this package but never mutate it
// beyond the idempotent create paths.
package directory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

// Client is a customer of the business, identified by a unique email.
type Client struct {
	shared.BaseEntity
	FullName         string          `json:"fullName"`
	Email            string          `json:"email"`
	PhoneNumber      string          `json:"phoneNumber"`
	BankingDetailsID uuid.UUID       `json:"bankingDetailsId"`
	BankingDetails   *BankingDetails `json:"bankingDetails,omitempty"`
}

// NewClient creates a client linked to an existing banking details record.
func NewClient(fullName, email, phoneNumber string, banking *BankingDetails) *Client {
	c := &Client{
		BaseEntity:  shared.NewBaseEntity(),
		FullName:    fullName,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		PhoneNumber: phoneNumber,
	}
	if banking != nil {
		c.BankingDetailsID = banking.ID
		c.BankingDetails = banking
	}
	return c
}

// SearchField selects which client column a partial-match search runs against.
type SearchField string

const (
	SearchByEmail       SearchField = "EMAIL"
	SearchByPhoneNumber SearchField = "PHONE_NUMBER"
)

// IsValid checks if the search field is one of the supported columns.
func (f SearchField) IsValid() bool {
	return f == SearchByEmail || f == SearchByPhoneNumber
}
