package subscription

// PlanType is the raw subscription type as stored. "basic" is a legacy
// alias for "free"; tier resolution normalizes it.
type PlanType string

const (
	PlanFree       PlanType = "free"
	PlanBasic      PlanType = "basic"
	PlanPremium    PlanType = "premium"
	PlanEnterprise PlanType = "enterprise"
)

// Status represents the current state of a subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// BillingCycle represents the billing frequency for a subscription.
type BillingCycle string

const (
	BillingCycleNone      BillingCycle = "none" // free plans with no billing
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, $10.99 USD would be Amount: 1099, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"` // ISO 4217 currency code
}
