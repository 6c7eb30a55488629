// Package billing holds the transaction and invoice lifecycle services.
// The invoice service is the entry point: it drives the transaction
// service, the pricing calculator and the cache, and wraps multi-entity
// creates in a single persistence transaction.
package billing

import (
	"context"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/settings"
)

// ClientDirectory resolves clients for transaction creation.
type ClientDirectory interface {
	FindByEmail(ctx context.Context, email string) (*directory.Client, error)
}

// PaymentMethodDirectory resolves payment methods for transaction creation.
type PaymentMethodDirectory interface {
	FindByName(ctx context.Context, name directory.MethodType) (*directory.PaymentMethod, error)
}

// ConfigResolver reads named settings with fallback defaults. Resolution
// never fails; an inactive or missing setting yields the fallback.
type ConfigResolver interface {
	GetByName(ctx context.Context, name, fallback string) *settings.Configuration
}
