// Package billing holds the transactional core: transactions, invoices with
// their line items, the pricing arithmetic and the transaction reference
// generator. All money passes through shopspring/decimal and is rounded to
// two places only at the boundaries defined here.
package billing

import "github.com/shopspring/decimal"

// AdjustedAmount applies VAT and bank charges to a base amount:
// base + base*vat + base*charges, rounded half-up to two decimal places.
// Rounding happens once, on the final sum, not per component.
func AdjustedAmount(base, vatRate, bankChargesRate decimal.Decimal) decimal.Decimal {
	vat := base.Mul(vatRate)
	charges := base.Mul(bankChargesRate)
	return base.Add(vat).Add(charges).Round(2)
}

// ItemTotal prices a line item: quantity * unitPrice, rounded half-up to
// two decimal places.
func ItemTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}
