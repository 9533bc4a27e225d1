// Package upgrade composes upgrade prompts and the five-step upgrade flow
// shown when a user hits a tier gate or usage cap.
//
// Prompts come in two kinds: usage-limit prompts triggered when a counter
// approaches its cap, with urgency graded by the share consumed, and
// feature-discovery prompts advertising a locked feature. Both are
// persisted through a PromptStore for analytics and frequency capping.
//
// GenerateUpgradeFlow returns a fixed-shape plan of exactly five steps
// (feature_blocked, value_proposition, pricing_comparison, payment,
// confirmation) for the caller to render; no step is executed here.
//
//	gen := upgrade.NewGenerator(subscriptionStore, promptStore, nil)
//
//	prompt, err := gen.TriggerUpgradePrompt(ctx, userID, upgrade.UsagePromptRequest{
//		Feature:      entitlement.FeatureWardrobeCataloging,
//		CurrentUsage: 95,
//		Limit:        100,
//	})
//
//	steps, err := gen.GenerateUpgradeFlow(ctx, userID, entitlement.TierPremium, nil)
package upgrade
