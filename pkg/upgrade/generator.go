package upgrade

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/subscription"
)

const ctaUpgradeNow = "Upgrade Now"

const socialProof = "Join thousands of members who upgraded to get more out of their wardrobe"

// Generator composes upgrade prompts and the fixed five-step upgrade flow.
// Like the evaluator it is stateless; it only describes steps for the
// caller to render, it never executes them.
type Generator struct {
	subs    entitlement.SubscriptionLookup
	store   PromptStore
	pricing PricingSource
}

// NewGenerator creates a Generator. The subscription lookup and prompt
// store are required; a nil pricing source falls back to the static
// published table.
func NewGenerator(subs entitlement.SubscriptionLookup, store PromptStore, pricing PricingSource) *Generator {
	if subs == nil {
		panic("upgrade: SubscriptionLookup is required")
	}
	if store == nil {
		panic("upgrade: PromptStore is required")
	}
	if pricing == nil {
		pricing = NewStaticPricing(nil)
	}
	return &Generator{subs: subs, store: store, pricing: pricing}
}

// TriggerUpgradePrompt builds, persists and returns a usage-limit prompt.
// Urgency follows the share of the cap consumed: 90% and above is high,
// 70–89% medium, below that the field stays unset.
func (g *Generator) TriggerUpgradePrompt(ctx context.Context, userID uuid.UUID, req UsagePromptRequest) (*Prompt, error) {
	f, err := entitlement.CatalogFeature(req.Feature)
	if err != nil {
		return nil, ErrFeatureNotFound
	}

	var pct int64
	if req.Limit > 0 {
		pct = req.CurrentUsage * 100 / req.Limit
	}

	var urgency Urgency
	switch {
	case pct >= 90:
		urgency = UrgencyHigh
	case pct >= 70:
		urgency = UrgencyMedium
	}

	prompt := &Prompt{
		UserID:  userID,
		Type:    PromptUsageLimit,
		Feature: f.ID,
		Content: PromptContent{
			Title:    fmt.Sprintf("You're running out of %s space", f.Name),
			Message:  fmt.Sprintf("You've used %d%% of your %s allowance on the free plan.", pct, f.Name),
			Benefits: benefitsFor(f.ID),
			CTA:      ctaUpgradeNow,
			Urgency:  urgency,
		},
	}

	if err := g.store.Save(ctx, prompt); err != nil {
		return nil, errors.Join(ErrFailedToSavePrompt, err)
	}
	return prompt, nil
}

// ShowFeatureDiscoveryPrompt builds, persists and returns a discovery
// prompt for a feature the user has not unlocked yet.
func (g *Generator) ShowFeatureDiscoveryPrompt(ctx context.Context, userID uuid.UUID, featureID entitlement.FeatureID) (*Prompt, error) {
	f, err := entitlement.CatalogFeature(featureID)
	if err != nil {
		return nil, ErrFeatureNotFound
	}

	prompt := &Prompt{
		UserID:  userID,
		Type:    PromptFeatureDiscovery,
		Feature: f.ID,
		Content: PromptContent{
			Title:       fmt.Sprintf("Unlock %s", f.Name),
			Message:     fmt.Sprintf("%s. Available on the %s plan.", f.Description, f.MinTier),
			Benefits:    benefitsFor(f.ID),
			CTA:         ctaUpgradeNow,
			SocialProof: socialProof,
		},
	}

	if err := g.store.Save(ctx, prompt); err != nil {
		return nil, errors.Join(ErrFailedToSavePrompt, err)
	}
	return prompt, nil
}

// GenerateUpgradeFlow produces the fixed five-step upgrade plan:
// feature_blocked, value_proposition, pricing_comparison, payment,
// confirmation. Dependency failures abort generation entirely; no partial
// flow is returned.
func (g *Generator) GenerateUpgradeFlow(ctx context.Context, userID uuid.UUID, targetTier entitlement.Tier, fctx *FlowContext) ([]Step, error) {
	if !targetTier.Valid() {
		return nil, ErrUnknownTier
	}

	currentTier, err := g.resolveTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	pricing, err := g.pricing.SubscriptionPricing(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPricing, err)
	}

	blocked := FeatureBlockedData{}
	if fctx != nil {
		blocked = FeatureBlockedData{
			Feature:      fctx.Feature,
			CurrentUsage: fctx.CurrentUsage,
			Limit:        fctx.Limit,
			Action:       fctx.Action,
		}
	}

	return []Step{
		{Type: StepFeatureBlocked, Data: blocked},
		{Type: StepValueProposition, Data: ValuePropositionData{
			CurrentTier: currentTier,
			TargetTier:  targetTier,
			Benefits:    slices.Clone(tierBenefits[targetTier]),
		}},
		{Type: StepPricingComparison, Data: PricingComparisonData{
			Pricing:  pricing,
			Discount: yearlyDiscount(pricing[targetTier]),
		}},
		{Type: StepPayment, Data: PaymentData{
			TargetTier: targetTier,
			Cycles: []subscription.BillingCycle{
				subscription.BillingCycleMonthly,
				subscription.BillingCycleQuarterly,
				subscription.BillingCycleYearly,
			},
		}},
		{Type: StepConfirmation, Data: ConfirmationData{
			TargetTier: targetTier,
			Message:    fmt.Sprintf("Welcome to the %s plan", targetTier),
		}},
	}, nil
}

func (g *Generator) resolveTier(ctx context.Context, userID uuid.UUID) (entitlement.Tier, error) {
	sub, err := g.subs.GetUserActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return entitlement.TierFree, nil
		}
		return entitlement.TierFree, errors.Join(entitlement.ErrSubscriptionLookupFailed, err)
	}
	if sub == nil || !sub.IsActive() {
		return entitlement.TierFree, nil
	}
	tier, _ := entitlement.ParseTier(string(sub.Type))
	return tier, nil
}
