// Package entitlement implements tier-based feature access evaluation for
// the Vangarments platform.
//
// The package holds the static feature catalog (tiers, usage caps, override
// flags) and an Evaluator that decides, per user and feature, whether access
// is granted. Denials are structured decision values with a human-readable
// reason and an upgrade target; errors are reserved for unknown feature IDs
// and infrastructure failures of the injected lookups.
//
// Key concepts:
//
//   - Tier: free < premium < enterprise; feature availability is monotonic
//     in tier rank except for override-controlled features
//   - Feature: immutable catalog entry with minimum tier, optional usage
//     cap (free tier only) and optional account-linking requirement
//   - AccessDecision: hasAccess plus reason and upgrade target when denied
//
// Basic usage:
//
//	eval := entitlement.NewEvaluator(subscriptionStore, usageProvider)
//
//	decision, err := eval.HasFeatureAccess(ctx, userID,
//		entitlement.FeatureWardrobeCataloging,
//		&entitlement.AccessContext{CurrentUsage: 42})
//	if err != nil {
//		// infrastructure failure, caller decides the fallback policy
//	}
//	if !decision.HasAccess {
//		// decision.Reason, decision.UpgradeRequired
//	}
//
// All operations are stateless computations over externally supplied data;
// concurrent evaluations need no coordination.
package entitlement
