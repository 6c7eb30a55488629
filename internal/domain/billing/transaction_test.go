package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/directory"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

func TestTransactionStatusIsFinal(t *testing.T) {
	assert.False(t, StatusPending.IsFinal())
	assert.True(t, StatusPaid.IsFinal())
	assert.True(t, StatusFailed.IsFinal())
}

func TestNewTransactionDerivesFinalState(t *testing.T) {
	client := directory.NewClient("Thabo Mokoena", "thabo@example.com", "0821234567", nil)
	method := &directory.PaymentMethod{BaseEntity: shared.NewBaseEntity(), Name: directory.MethodEFT}

	trxn := NewTransaction("123456789012345", client, decimal.RequireFromString("116.00"), method, StatusPending, 6)

	assert.False(t, trxn.IsFinalState)
	assert.Equal(t, client.ID, trxn.ClientID)
	assert.Equal(t, method.ID, trxn.PaymentMethodID)

	expected := time.Now().AddDate(0, 0, 6)
	assert.WithinDuration(t, expected, trxn.ExpiresAt, 2*time.Second)
}

func TestTransactionApplyFlipsFinalState(t *testing.T) {
	trxn := NewTransaction("123456789012345", nil, decimal.RequireFromString("100.00"), nil, StatusPending, 6)
	require.False(t, trxn.IsFinalState)

	err := trxn.Apply(decimal.RequireFromString("116.00"), StatusPaid)
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, trxn.Status)
	assert.True(t, trxn.IsFinalState)
	assert.Equal(t, "116.00", trxn.Amount.StringFixed(2))
}

func TestTransactionApplyRejectsUnknownStatus(t *testing.T) {
	trxn := NewTransaction("123456789012345", nil, decimal.Zero, nil, StatusPending, 6)

	err := trxn.Apply(decimal.Zero, TransactionStatus("CANCELLED"))
	require.Error(t, err)
	assert.Equal(t, StatusPending, trxn.Status)
	assert.False(t, trxn.IsFinalState)
}

func TestInvoiceItemRecompute(t *testing.T) {
	item := NewInvoiceItem("SKU-001", "Widget", "standard widget", 2, decimal.RequireFromString("199.99"))
	assert.Equal(t, "399.98", item.TotalPrice.StringFixed(2))

	item.Quantity = 3
	item.Recompute()
	assert.Equal(t, "599.97", item.TotalPrice.StringFixed(2))
}

func TestNewInvoiceCopiesTransactionState(t *testing.T) {
	trxn := NewTransaction("123456789012345", nil, decimal.RequireFromString("116.00"), nil, StatusPending, 6)
	items := []*InvoiceItem{
		NewInvoiceItem("SKU-001", "Widget", "", 1, decimal.RequireFromString("50.00")),
		NewInvoiceItem("SKU-002", "Gadget", "", 2, decimal.RequireFromString("25.00")),
	}

	inv := NewInvoice(trxn, decimal.RequireFromString("116.00"), "Applies VAT: 0.15, Bank Charges: 0.01", items)

	assert.Equal(t, trxn.ID, inv.TransactionID)
	assert.Equal(t, trxn.Status, inv.Status)
	assert.Equal(t, trxn.ExpiresAt, inv.ExpiresAt)
	for _, item := range inv.Items {
		assert.Equal(t, inv.ID, item.InvoiceID)
	}
}

func TestInvoiceReviseOverwritesAmountAndStatus(t *testing.T) {
	trxn := NewTransaction("123456789012345", nil, decimal.RequireFromString("50.00"), nil, StatusPending, 6)
	inv := NewInvoice(trxn, decimal.RequireFromString("50.00"), "initial", []*InvoiceItem{
		NewInvoiceItem("SKU-001", "Widget", "", 1, decimal.RequireFromString("50.00")),
	})

	inv.Revise(decimal.RequireFromString("46.40"), StatusPaid, "restock")

	assert.Equal(t, "46.40", inv.Amount.StringFixed(2))
	assert.Equal(t, StatusPaid, inv.Status)
	assert.Equal(t, "restock", inv.Reason)

	inv.Revise(decimal.RequireFromString("46.40"), StatusPaid, "")
	assert.Equal(t, "restock", inv.Reason, "empty reason keeps the previous one")
}

func TestInvoiceFilterCacheKeyIsDeterministic(t *testing.T) {
	final := true
	a := InvoiceFilter{TrxnReference: "123456789012345", IsFinalState: &final, SortBy: SortByCreatedAt, Page: 1, Limit: 20}
	b := InvoiceFilter{TrxnReference: "123456789012345", IsFinalState: &final, SortBy: SortByCreatedAt, Page: 1, Limit: 20}

	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := a
	c.Page = 2
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())

	unfiltered := InvoiceFilter{SortBy: SortByExpiresAt, Page: 1, Limit: 20}
	assert.Contains(t, unfiltered.CacheKey(), "final=any")
}

func TestInvoiceFilterNormalize(t *testing.T) {
	var f InvoiceFilter
	f.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, SortByCreatedAt, f.SortBy)
}
