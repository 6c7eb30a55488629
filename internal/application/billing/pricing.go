package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appsettings "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/billing"
)

// Fallback rates applied when the configuration rows are missing or inactive.
const (
	DefaultVATPercentage   = "0.15"
	DefaultBankChargesRate = "0.01"
)

// Pricing reads the VAT and bank-charge rates through the configuration
// resolver and applies them to base amounts.
type Pricing struct {
	config ConfigResolver
	logger *zap.Logger
}

// NewPricing creates a new Pricing calculator
func NewPricing(config ConfigResolver, logger *zap.Logger) *Pricing {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pricing{config: config, logger: logger}
}

// Adjust computes the VAT/charge-adjusted amount for a base amount and
// returns it together with the rates that were applied.
func (p *Pricing) Adjust(ctx context.Context, base decimal.Decimal) (amount, vat, charges decimal.Decimal) {
	vat = p.rate(ctx, appsettings.ConfigVATPercentage, DefaultVATPercentage)
	charges = p.rate(ctx, appsettings.ConfigBankChargesRate, DefaultBankChargesRate)
	return billing.AdjustedAmount(base, vat, charges), vat, charges
}

// DefaultReason renders the auto-filled invoice reason naming the rates.
func DefaultReason(vat, charges decimal.Decimal) string {
	return fmt.Sprintf("Applies VAT: %s, Bank Charges: %s", vat.String(), charges.String())
}

func (p *Pricing) rate(ctx context.Context, name, fallback string) decimal.Decimal {
	cfg := p.config.GetByName(ctx, name, fallback)

	rate, err := decimal.NewFromString(cfg.Value)
	if err != nil {
		p.logger.Warn("Configuration value is not numeric, using fallback",
			zap.String("name", name),
			zap.String("value", cfg.Value),
			zap.String("fallback", fallback))
		return decimal.RequireFromString(fallback)
	}
	return rate
}
