package upgrade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/subscription"
)

// PromptType distinguishes why a prompt was shown.
type PromptType string

const (
	PromptUsageLimit       PromptType = "usage_limit"
	PromptFeatureDiscovery PromptType = "feature_discovery"
)

// Urgency grades a usage-limit prompt. Low urgency is implicit: the field
// stays empty below the medium threshold.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
)

// PromptContent is the presentation payload of a prompt.
type PromptContent struct {
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Benefits    []string `json:"benefits"`
	CTA         string   `json:"cta"`
	Urgency     Urgency  `json:"urgency,omitempty"`
	SocialProof string   `json:"socialProof,omitempty"`
}

// Prompt records an upgrade prompt shown to a user. Persisted for
// analytics and dedup; never mutated after creation.
type Prompt struct {
	ID      uuid.UUID             `json:"id"`
	UserID  uuid.UUID             `json:"userId"`
	Type    PromptType            `json:"promptType"`
	Feature entitlement.FeatureID `json:"featureContext"`
	Content PromptContent         `json:"promptContent"`
	ShownAt time.Time             `json:"shownAt"`
}

// PromptStore persists prompts. Save assigns ID and ShownAt when unset.
type PromptStore interface {
	Save(ctx context.Context, prompt *Prompt) error
}

// UsagePromptRequest describes the usage event that triggered a prompt.
type UsagePromptRequest struct {
	Feature      entitlement.FeatureID `json:"featureName"`
	CurrentUsage int64                 `json:"currentUsage"`
	Limit        int64                 `json:"limit"`
	Action       string                `json:"action,omitempty"`
}

// PlanPricing lists a tier's price per billing cycle.
type PlanPricing struct {
	Monthly   subscription.Money `json:"monthly"`
	Quarterly subscription.Money `json:"quarterly"`
	Yearly    subscription.Money `json:"yearly"`
}

// PricingTable maps each tier to its pricing options.
type PricingTable map[entitlement.Tier]PlanPricing

// PricingSource supplies the current pricing table.
type PricingSource interface {
	SubscriptionPricing(ctx context.Context) (PricingTable, error)
}

// StepType identifies a step in the generated upgrade flow.
type StepType string

const (
	StepFeatureBlocked    StepType = "feature_blocked"
	StepValueProposition  StepType = "value_proposition"
	StepPricingComparison StepType = "pricing_comparison"
	StepPayment           StepType = "payment"
	StepConfirmation      StepType = "confirmation"
)

// Step is one presentation step of the upgrade flow. The flow is a plan
// for the caller to render and drive, not a running process.
type Step struct {
	Type StepType `json:"type"`
	Data any      `json:"data"`
}

// FlowContext echoes the triggering feature into the feature_blocked step.
type FlowContext struct {
	Feature      entitlement.FeatureID `json:"featureName,omitempty"`
	CurrentUsage int64                 `json:"currentUsage,omitempty"`
	Limit        int64                 `json:"limit,omitempty"`
	Action       string                `json:"action,omitempty"`
}

// Step data payloads, one per step type.

type FeatureBlockedData struct {
	Feature      entitlement.FeatureID `json:"feature,omitempty"`
	CurrentUsage int64                 `json:"currentUsage,omitempty"`
	Limit        int64                 `json:"limit,omitempty"`
	Action       string                `json:"action,omitempty"`
}

type ValuePropositionData struct {
	CurrentTier entitlement.Tier `json:"currentTier"`
	TargetTier  entitlement.Tier `json:"targetTier"`
	Benefits    []string         `json:"benefits"`
}

type PricingComparisonData struct {
	Pricing  PricingTable `json:"pricing"`
	Discount *Discount    `json:"discount,omitempty"`
}

// Discount describes the saving available on a longer billing cycle.
type Discount struct {
	Cycle   subscription.BillingCycle `json:"cycle"`
	Percent int                       `json:"percent"`
}

type PaymentData struct {
	TargetTier entitlement.Tier            `json:"targetTier"`
	Cycles     []subscription.BillingCycle `json:"cycles"`
}

type ConfirmationData struct {
	TargetTier entitlement.Tier `json:"targetTier"`
	Message    string           `json:"message"`
}
