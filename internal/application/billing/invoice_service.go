package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
)

const (
	invoiceByTrxnCachePrefix = "invoice:trxn:"
	invoiceListCachePrefix   = "invoices:filter:"
)

// InvoiceItemInput carries one requested line item. Any client-supplied
// total is ignored; totals are always recomputed server-side.
type InvoiceItemInput struct {
	SKU         string
	ItemName    string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// CreateInvoiceInput carries the data for creating an invoice together
// with its transaction. When TrxnReference resolves to an existing
// transaction it is reused; otherwise a transaction is created from the
// nested fields.
type CreateInvoiceInput struct {
	BaseAmount    decimal.Decimal
	Reason        string
	Status        *billing.TransactionStatus
	Items         []InvoiceItemInput
	TrxnReference string
	Transaction   CreateTransactionInput
}

// ReviseInvoiceInput carries a revision of an existing invoice. The
// transaction and invoice must both pre-exist; this path never creates.
type ReviseInvoiceInput struct {
	TrxnReference string
	Amount        *decimal.Decimal
	Status        *billing.TransactionStatus
	Reason        string
}

// InvoiceListing is a cached page of filtered invoices.
type InvoiceListing struct {
	Items []*billing.Invoice `json:"items"`
	Total int64              `json:"total"`
}

// InvoiceService orchestrates the invoice lifecycle: creation with its
// transaction in one atomic write, revision of amount/status/reason, and
// the cached read paths.
type InvoiceService struct {
	invoices   billing.InvoiceRepository
	trxns      *TransactionService
	pricing    *Pricing
	txm        shared.TxManager
	cache      cache.Store
	entityTTL  time.Duration
	listingTTL time.Duration
	logger     *zap.Logger
}

// InvoiceServiceConfig holds the dependencies for InvoiceService.
type InvoiceServiceConfig struct {
	Invoices     billing.InvoiceRepository
	Transactions *TransactionService
	Pricing      *Pricing
	TxManager    shared.TxManager
	Cache        cache.Store
	EntityTTL    time.Duration
	ListingTTL   time.Duration
	Logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(cfg InvoiceServiceConfig) *InvoiceService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	txm := cfg.TxManager
	if txm == nil {
		txm = shared.NopTxManager{}
	}
	return &InvoiceService{
		invoices:   cfg.Invoices,
		trxns:      cfg.Transactions,
		pricing:    cfg.Pricing,
		txm:        txm,
		cache:      cfg.Cache,
		entityTTL:  cfg.EntityTTL,
		listingTTL: cfg.ListingTTL,
		logger:     logger,
	}
}

// CreateInvoice creates an invoice and, when needed, its transaction in
// a single persistence transaction. A failure partway through commits
// nothing.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*billing.Invoice, error) {
	var (
		invoice     *billing.Invoice
		createdTrxn string
	)

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		trxn, created, err := s.resolveOrCreateTransaction(ctx, input)
		if err != nil {
			return err
		}
		if created {
			createdTrxn = trxn.TrxnReference
		}

		amount, vat, charges := s.pricing.Adjust(ctx, input.BaseAmount)

		reason := input.Reason
		if reason == "" {
			reason = DefaultReason(vat, charges)
		}

		items := make([]*billing.InvoiceItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, billing.NewInvoiceItem(item.SKU, item.ItemName, item.Description, item.Quantity, item.UnitPrice))
		}

		invoice = billing.NewInvoice(trxn, amount, reason, items)
		if input.Status != nil {
			invoice.Status = *input.Status
		}
		return s.invoices.Save(ctx, invoice)
	})
	if err != nil {
		// The rollback also covers a transaction created in this call;
		// drop its cache entry so readers cannot see the phantom.
		if createdTrxn != "" {
			if cerr := s.cache.Delete(ctx, transactionCachePrefix+createdTrxn); cerr != nil {
				s.logger.Warn("Failed to evict rolled-back transaction from cache",
					zap.String("trxn_reference", createdTrxn),
					zap.Error(cerr))
			}
		}
		return nil, err
	}

	s.cacheInvoice(ctx, invoice)

	s.logger.Info("Invoice created",
		zap.String("trxn_reference", invoice.Transaction.TrxnReference),
		zap.String("amount", invoice.Amount.StringFixed(2)))
	return invoice, nil
}

// ReviseInvoice overwrites the amount, status and reason of an existing
// invoice; omitted fields keep the invoice's stored values. Both the
// transaction and its invoice must pre-exist; a status change moves the
// transaction's amount, status and final-state flag together.
func (s *InvoiceService) ReviseInvoice(ctx context.Context, input ReviseInvoiceInput) (*billing.Invoice, error) {
	var invoice *billing.Invoice

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		trxn, err := s.trxns.FindByReference(ctx, input.TrxnReference)
		if err != nil {
			return err
		}

		if input.Status != nil && *input.Status != trxn.Status {
			trxn, err = s.trxns.UpdateByReference(ctx, input.TrxnReference, UpdateTransactionInput{
				Amount: input.Amount,
				Status: input.Status,
			})
			if err != nil {
				return err
			}
		}

		invoice, err = s.invoices.FindByTransactionID(ctx, trxn.ID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return shared.NotFoundf("Invoice for transaction %s not found", input.TrxnReference)
		}

		// Omitted fields keep the invoice's own stored values; the
		// invoice holds the adjusted amount, not the transaction base.
		amount := invoice.Amount
		if input.Amount != nil {
			amount = *input.Amount
		}
		status := invoice.Status
		if input.Status != nil {
			status = *input.Status
		}
		invoice.Revise(amount, status, input.Reason)
		invoice.Transaction = trxn
		return s.invoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvoice(ctx, invoice)

	s.logger.Info("Invoice revised",
		zap.String("trxn_reference", input.TrxnReference),
		zap.String("status", string(invoice.Status)))
	return invoice, nil
}

// FindByTransactionReference is a cache-aside read joining the
// transaction, client and line items. NotFound when either the
// transaction or its invoice is missing.
func (s *InvoiceService) FindByTransactionReference(ctx context.Context, reference string) (*billing.Invoice, error) {
	key := invoiceByTrxnCachePrefix + reference

	cached, ok, err := cache.GetJSON[*billing.Invoice](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read invoice from cache",
			zap.String("trxn_reference", reference),
			zap.Error(err))
	}
	if ok && cached != nil {
		return cached, nil
	}

	trxn, err := s.trxns.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoices.FindByTransactionID(ctx, trxn.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NotFoundf("Invoice for transaction %s not found", reference)
	}

	s.cacheInvoice(ctx, invoice)
	return invoice, nil
}

// FindInvoices lists invoices matching the filter. The full page is
// cached under a key derived from the filter with a finite expiry, so
// reads inside that window can lag behind later mutations.
func (s *InvoiceService) FindInvoices(ctx context.Context, filter billing.InvoiceFilter) (*InvoiceListing, error) {
	filter.Normalize()
	key := invoiceListCachePrefix + filter.CacheKey()

	cached, ok, err := cache.GetJSON[*InvoiceListing](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("Failed to read invoice listing from cache", zap.Error(err))
	}
	if ok && cached != nil {
		return cached, nil
	}

	items, total, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	listing := &InvoiceListing{Items: items, Total: total}
	if err := cache.SetJSON(ctx, s.cache, key, listing, s.listingTTL); err != nil {
		s.logger.Warn("Failed to cache invoice listing", zap.Error(err))
	}
	return listing, nil
}

// resolveOrCreateTransaction looks the transaction up by reference and
// creates one from the nested payload when the lookup misses. The
// returned bool reports whether a transaction was created.
func (s *InvoiceService) resolveOrCreateTransaction(ctx context.Context, input CreateInvoiceInput) (*billing.Transaction, bool, error) {
	if input.TrxnReference != "" {
		trxn, err := s.trxns.FindByReference(ctx, input.TrxnReference)
		if err == nil {
			return trxn, false, nil
		}
		if !shared.IsNotFound(err) {
			return nil, false, err
		}
	}

	reference, err := s.trxns.Create(ctx, input.Transaction)
	if err != nil {
		return nil, false, err
	}

	trxn, err := s.trxns.FindByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return trxn, true, nil
}

func (s *InvoiceService) cacheInvoice(ctx context.Context, invoice *billing.Invoice) {
	if invoice.Transaction == nil {
		return
	}
	key := invoiceByTrxnCachePrefix + invoice.Transaction.TrxnReference
	if err := cache.SetJSON(ctx, s.cache, key, invoice, s.entityTTL); err != nil {
		s.logger.Warn("Failed to cache invoice",
			zap.String("trxn_reference", invoice.Transaction.TrxnReference),
			zap.Error(err))
	}
}
