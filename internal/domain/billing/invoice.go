package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

// InvoiceItem is a single line on an invoice. TotalPrice is always
// recomputed from Quantity and UnitPrice, never trusted from input.
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	SKU         string          `json:"sku"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// NewInvoiceItem creates a line item with its total derived from the
// quantity and unit price.
func NewInvoiceItem(sku, itemName, description string, quantity int64, unitPrice decimal.Decimal) *InvoiceItem {
	return &InvoiceItem{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         sku,
		ItemName:    itemName,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  ItemTotal(quantity, unitPrice),
	}
}

// Recompute rederives the line total after quantity or price changes.
func (i *InvoiceItem) Recompute() {
	i.TotalPrice = ItemTotal(i.Quantity, i.UnitPrice)
	i.Touch()
}

// Invoice documents a transaction: the adjusted amount, the reason for
// the charge and the line items that make it up. Status mirrors the
// owning transaction's status at last write; ClientID and ExpiresAt are
// denormalized from the transaction at creation time. An invoice belongs
// to exactly one transaction.
type Invoice struct {
	shared.BaseEntity
	TransactionID uuid.UUID         `json:"transactionId"`
	Transaction   *Transaction      `json:"transaction,omitempty"`
	ClientID      uuid.UUID         `json:"clientId"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransactionStatus `json:"status"`
	Reason        string            `json:"reason"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	Items         []*InvoiceItem    `json:"items"`
}

// NewInvoice creates an invoice for a transaction, copying its client,
// status and expiry, and linking each item to the new invoice.
func NewInvoice(trxn *Transaction, amount decimal.Decimal, reason string, items []*InvoiceItem) *Invoice {
	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Amount:     amount,
		Reason:     reason,
		Items:      items,
	}
	if trxn != nil {
		inv.TransactionID = trxn.ID
		inv.Transaction = trxn
		inv.ClientID = trxn.ClientID
		inv.Status = trxn.Status
		inv.ExpiresAt = trxn.ExpiresAt
	}
	for _, item := range items {
		item.InvoiceID = inv.ID
	}
	return inv
}

// Revise overwrites the amount, status and reason in place. An empty
// reason keeps the existing one.
func (inv *Invoice) Revise(amount decimal.Decimal, status TransactionStatus, reason string) {
	inv.Amount = amount
	inv.Status = status
	if reason != "" {
		inv.Reason = reason
	}
	inv.Touch()
}
