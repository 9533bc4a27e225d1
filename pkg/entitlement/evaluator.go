package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lv-asc/vangarments/pkg/subscription"
	"github.com/lv-asc/vangarments/pkg/usage"
)

// SubscriptionLookup resolves a user's active subscription. A missing
// subscription must surface as subscription.ErrSubscriptionNotFound; the
// evaluator treats that as the free tier. Any other failure propagates.
type SubscriptionLookup interface {
	GetUserActiveSubscription(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error)
}

// Evaluator decides feature access for users. It is stateless: every call
// is an independent computation over the static catalog plus the two
// injected lookups, safe for unsynchronized concurrent use.
type Evaluator struct {
	subs  SubscriptionLookup
	usage usage.Provider
}

// NewEvaluator creates an Evaluator with the given dependencies.
// Panics if either dependency is nil to fail fast during wiring.
func NewEvaluator(subs SubscriptionLookup, usageProvider usage.Provider) *Evaluator {
	if subs == nil {
		panic("entitlement: SubscriptionLookup is required")
	}
	if usageProvider == nil {
		panic("entitlement: usage.Provider is required")
	}
	return &Evaluator{subs: subs, usage: usageProvider}
}

// HasFeatureAccess evaluates whether the user may use the named feature.
// A denial is a normal decision value; errors are reserved for unknown
// feature IDs and infrastructure failures. The decision order is fixed:
// account linking, then tier gate (with subscription overrides), then the
// free-tier usage cap. The cap is an inclusive ceiling: usage at the cap
// is already exceeded.
func (e *Evaluator) HasFeatureAccess(ctx context.Context, userID uuid.UUID, id FeatureID, actx *AccessContext) (AccessDecision, error) {
	f, err := CatalogFeature(id)
	if err != nil {
		return AccessDecision{}, err
	}

	tier, sub, err := e.resolveTier(ctx, userID)
	if err != nil {
		return AccessDecision{}, err
	}

	if f.RequiresLinking && (actx == nil || !actx.HasAccountLinking) {
		return AccessDecision{
			Reason: fmt.Sprintf("%s requires account linking", f.Name),
		}, nil
	}

	if !gatePassed(f, tier, sub) {
		return AccessDecision{
			Reason:          fmt.Sprintf("%s requires %s subscription", f.Name, f.MinTier),
			UpgradeRequired: f.MinTier,
		}, nil
	}

	// Usage caps are defined for the free tier only; paid tiers bypass the
	// numeric check entirely.
	if f.Limited() && tier == TierFree && actx != nil && actx.CurrentUsage >= f.Limit {
		return AccessDecision{
			Reason:          fmt.Sprintf("Maximum %d %s allowed", f.Limit, f.Unit),
			UpgradeRequired: TierPremium,
		}, nil
	}

	return AccessDecision{HasAccess: true}, nil
}

// CheckUsageLimits reports which usage-limited features the user is
// approaching or has exhausted. Paid tiers always get an empty report.
// List order follows catalog declaration order, not usage magnitude.
func (e *Evaluator) CheckUsageLimits(ctx context.Context, userID uuid.UUID) (LimitsReport, error) {
	report := LimitsReport{
		Warnings: make([]LimitWarning, 0, len(usageCounters)),
		Blocked:  make([]LimitBlock, 0, len(usageCounters)),
	}

	tier, _, err := e.resolveTier(ctx, userID)
	if err != nil {
		return LimitsReport{}, err
	}
	if tier.AtLeast(TierPremium) {
		return report, nil
	}

	snap, err := e.usage.GetUserFeatureUsage(ctx, userID)
	if err != nil {
		return LimitsReport{}, errors.Join(ErrUsageLookupFailed, err)
	}

	for _, rule := range usageCounters {
		f := catalogByID[rule.Feature]
		current := rule.Current(snap)
		if current >= f.Limit {
			report.Blocked = append(report.Blocked, LimitBlock{
				Feature: f.ID,
				Current: current,
				Limit:   f.Limit,
			})
			continue
		}

		pct := float64(current) / float64(f.Limit) * 100
		if pct >= float64(f.WarnPercent) {
			report.Warnings = append(report.Warnings, LimitWarning{
				Feature:    f.ID,
				Percentage: pct,
			})
		}
	}

	return report, nil
}

// UserFeatures partitions the catalog into available and restricted sets by
// tier gate. Usage exhaustion does not restrict a feature here; exhausted
// caps are reported by CheckUsageLimits. When includeRestricted is false
// only the available list is populated.
func (e *Evaluator) UserFeatures(ctx context.Context, userID uuid.UUID, includeRestricted bool) (FeatureBreakdown, error) {
	tier, sub, err := e.resolveTier(ctx, userID)
	if err != nil {
		return FeatureBreakdown{}, err
	}

	breakdown := FeatureBreakdown{
		Available: make([]Feature, 0, len(catalog)),
	}
	if includeRestricted {
		breakdown.Restricted = make([]Feature, 0, len(catalog))
	}

	for _, f := range catalog {
		if gatePassed(f, tier, sub) {
			breakdown.Available = append(breakdown.Available, f)
		} else if includeRestricted {
			breakdown.Restricted = append(breakdown.Restricted, f)
		}
	}

	return breakdown, nil
}

// resolveTier maps the user's active subscription to a tier. Absence of a
// subscription is the normal default case, not an error.
func (e *Evaluator) resolveTier(ctx context.Context, userID uuid.UUID) (Tier, *subscription.Subscription, error) {
	sub, err := e.subs.GetUserActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return TierFree, nil, nil
		}
		return TierFree, nil, errors.Join(ErrSubscriptionLookupFailed, err)
	}
	if sub == nil || !sub.IsActive() {
		return TierFree, nil, nil
	}

	tier, _ := ParseTier(string(sub.Type))
	return tier, sub, nil
}

// gatePassed applies the tier gate with subscription overrides. An explicit
// override decides in both directions; absent overrides fall back to tier
// rank, which is monotonic in the tier order.
func gatePassed(f Feature, tier Tier, sub *subscription.Subscription) bool {
	if f.OverrideKey != "" {
		if v, ok := sub.Override(f.OverrideKey); ok {
			return v
		}
	}
	return tier.AtLeast(f.MinTier)
}
