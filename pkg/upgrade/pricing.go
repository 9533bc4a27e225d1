package upgrade

import (
	"context"
	"maps"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/subscription"
)

// staticPricing is the default pricing table. Amounts are in cents, USD.
type staticPricing struct {
	table PricingTable
}

// NewStaticPricing returns a PricingSource serving a fixed table. With no
// argument it serves the platform's published pricing.
func NewStaticPricing(table PricingTable) PricingSource {
	if table == nil {
		table = defaultPricingTable
	}
	return &staticPricing{table: table}
}

func (s *staticPricing) SubscriptionPricing(ctx context.Context) (PricingTable, error) {
	return maps.Clone(s.table), nil
}

func usd(cents int64) subscription.Money {
	return subscription.Money{Amount: cents, Currency: "USD"}
}

var defaultPricingTable = PricingTable{
	entitlement.TierFree: {
		Monthly:   usd(0),
		Quarterly: usd(0),
		Yearly:    usd(0),
	},
	entitlement.TierPremium: {
		Monthly:   usd(999),
		Quarterly: usd(2699),
		Yearly:    usd(9590), // two months free vs monthly
	},
	entitlement.TierEnterprise: {
		Monthly:   usd(4999),
		Quarterly: usd(13499),
		Yearly:    usd(47990),
	},
}

// yearlyDiscount computes the saving of the yearly cycle against twelve
// monthly payments, as a whole percentage. Returns nil when there is none.
func yearlyDiscount(p PlanPricing) *Discount {
	annualized := p.Monthly.Amount * 12
	if annualized <= 0 || p.Yearly.Amount >= annualized {
		return nil
	}
	pct := int((annualized - p.Yearly.Amount) * 100 / annualized)
	if pct <= 0 {
		return nil
	}
	return &Discount{Cycle: subscription.BillingCycleYearly, Percent: pct}
}
