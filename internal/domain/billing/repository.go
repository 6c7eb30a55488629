package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TransactionRepository provides access to transaction aggregates.
// FindByReference returns (nil, nil) when no transaction matches.
type TransactionRepository interface {
	Save(ctx context.Context, trxn *Transaction) error
	FindByReference(ctx context.Context, reference string) (*Transaction, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// SortField selects the column an invoice listing is ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByExpiresAt SortField = "expiresAt"
)

// IsValid checks if the sort field is one of the allowed columns.
func (f SortField) IsValid() bool {
	return f == SortByCreatedAt || f == SortByExpiresAt
}

// InvoiceFilter narrows and pages an invoice listing. Zero values mean
// "no constraint" for the optional fields.
type InvoiceFilter struct {
	TrxnReference string
	IsFinalState  *bool
	SortBy        SortField
	Page          int
	Limit         int
}

// Normalize fills paging and sorting defaults in place.
func (f *InvoiceFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if !f.SortBy.IsValid() {
		f.SortBy = SortByCreatedAt
	}
}

// CacheKey renders the filter as a deterministic cache key segment, so
// identical filters always hit the same listing cache entry.
func (f InvoiceFilter) CacheKey() string {
	final := "any"
	if f.IsFinalState != nil {
		final = fmt.Sprintf("%t", *f.IsFinalState)
	}
	return fmt.Sprintf("ref=%s:final=%s:sort=%s:page=%d:limit=%d",
		f.TrxnReference, final, f.SortBy, f.Page, f.Limit)
}

// InvoiceRepository provides access to invoice aggregates. Reads load the
// full graph: transaction, client with banking details, and line items.
// FindByTransactionID returns (nil, nil) when the transaction has no invoice.
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByTransactionID(ctx context.Context, trxnID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]*Invoice, int64, error)
}
