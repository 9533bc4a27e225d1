package upgrade_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/subscription"
	"github.com/lv-asc/vangarments/pkg/upgrade"
)

type mockSubscriptionLookup struct {
	mock.Mock
}

func (m *mockSubscriptionLookup) GetUserActiveSubscription(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

type mockPricingSource struct {
	mock.Mock
}

func (m *mockPricingSource) SubscriptionPricing(ctx context.Context) (upgrade.PricingTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(upgrade.PricingTable), args.Error(1)
}

func freeUserLookup(userID uuid.UUID) *mockSubscriptionLookup {
	subs := &mockSubscriptionLookup{}
	subs.On("GetUserActiveSubscription", mock.Anything, userID).
		Return(nil, subscription.ErrSubscriptionNotFound)
	return subs
}

func TestGenerator_TriggerUpgradePrompt(t *testing.T) {
	t.Parallel()

	t.Run("builds and persists a usage limit prompt", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := upgrade.NewMemPromptStore()
		gen := upgrade.NewGenerator(freeUserLookup(userID), store, nil)

		prompt, err := gen.TriggerUpgradePrompt(context.Background(), userID, upgrade.UsagePromptRequest{
			Feature:      entitlement.FeatureWardrobeCataloging,
			CurrentUsage: 95,
			Limit:        100,
			Action:       "add_item",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, prompt.ID)
		assert.False(t, prompt.ShownAt.IsZero())
		assert.Equal(t, upgrade.PromptUsageLimit, prompt.Type)
		assert.Equal(t, entitlement.FeatureWardrobeCataloging, prompt.Feature)
		assert.Contains(t, prompt.Content.Title, "Wardrobe Cataloging")
		assert.Contains(t, prompt.Content.Message, "95%")
		assert.Equal(t, "Upgrade Now", prompt.Content.CTA)
		assert.NotEmpty(t, prompt.Content.Benefits)

		saved := store.ByUser(userID)
		require.Len(t, saved, 1)
		assert.Equal(t, prompt.ID, saved[0].ID)
	})

	t.Run("urgency grading follows usage share", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			usage   int64
			urgency upgrade.Urgency
		}{
			{95, upgrade.UrgencyHigh},
			{90, upgrade.UrgencyHigh},
			{75, upgrade.UrgencyMedium},
			{70, upgrade.UrgencyMedium},
			{50, ""},
		}
		for _, tc := range cases {
			userID := uuid.New()
			gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

			prompt, err := gen.TriggerUpgradePrompt(context.Background(), userID, upgrade.UsagePromptRequest{
				Feature:      entitlement.FeatureOutfitCreation,
				CurrentUsage: tc.usage,
				Limit:        100,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.urgency, prompt.Content.Urgency, "usage %d", tc.usage)
		}
	})

	t.Run("unknown feature is a user-facing error", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

		_, err := gen.TriggerUpgradePrompt(context.Background(), userID, upgrade.UsagePromptRequest{
			Feature: "non_existent_feature",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, upgrade.ErrFeatureNotFound)
		assert.Contains(t, err.Error(), "Feature not found")
	})
}

func TestGenerator_ShowFeatureDiscoveryPrompt(t *testing.T) {
	t.Parallel()

	t.Run("builds a discovery prompt with social proof", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := upgrade.NewMemPromptStore()
		gen := upgrade.NewGenerator(freeUserLookup(userID), store, nil)

		prompt, err := gen.ShowFeatureDiscoveryPrompt(context.Background(), userID,
			entitlement.FeatureMarketplaceTrading)
		require.NoError(t, err)

		assert.Equal(t, upgrade.PromptFeatureDiscovery, prompt.Type)
		assert.Equal(t, "Unlock Marketplace Trading", prompt.Content.Title)
		assert.Contains(t, prompt.Content.Message, "premium")
		assert.NotEmpty(t, prompt.Content.SocialProof)
		assert.Empty(t, prompt.Content.Urgency)
		require.Len(t, store.ByUser(userID), 1)
	})

	t.Run("rejects unknown feature names", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

		_, err := gen.ShowFeatureDiscoveryPrompt(context.Background(), userID, "non_existent_feature")
		assert.ErrorIs(t, err, upgrade.ErrFeatureNotFound)
	})
}

func TestGenerator_GenerateUpgradeFlow(t *testing.T) {
	t.Parallel()

	t.Run("always returns exactly five steps in fixed order", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

		steps, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.TierPremium, nil)
		require.NoError(t, err)
		require.Len(t, steps, 5)

		want := []upgrade.StepType{
			upgrade.StepFeatureBlocked,
			upgrade.StepValueProposition,
			upgrade.StepPricingComparison,
			upgrade.StepPayment,
			upgrade.StepConfirmation,
		}
		for i, st := range steps {
			assert.Equal(t, want[i], st.Type)
		}
	})

	t.Run("echoes the triggering feature context and current tier", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		subs := &mockSubscriptionLookup{}
		subs.On("GetUserActiveSubscription", mock.Anything, userID).
			Return(&subscription.Subscription{
				ID: uuid.New(), UserID: userID,
				Type: subscription.PlanPremium, Status: subscription.StatusActive,
			}, nil)
		gen := upgrade.NewGenerator(subs, upgrade.NewMemPromptStore(), nil)

		steps, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.TierEnterprise, &upgrade.FlowContext{
				Feature:      entitlement.FeatureAPIAccess,
				CurrentUsage: 0,
				Action:       "api_call",
			})
		require.NoError(t, err)

		blocked := steps[0].Data.(upgrade.FeatureBlockedData)
		assert.Equal(t, entitlement.FeatureAPIAccess, blocked.Feature)
		assert.Equal(t, "api_call", blocked.Action)

		vp := steps[1].Data.(upgrade.ValuePropositionData)
		assert.Equal(t, entitlement.TierPremium, vp.CurrentTier)
		assert.Equal(t, entitlement.TierEnterprise, vp.TargetTier)
		assert.NotEmpty(t, vp.Benefits)
	})

	t.Run("pricing comparison carries all tiers and a yearly discount", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

		steps, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.TierPremium, nil)
		require.NoError(t, err)

		pc := steps[2].Data.(upgrade.PricingComparisonData)
		assert.Contains(t, pc.Pricing, entitlement.TierFree)
		assert.Contains(t, pc.Pricing, entitlement.TierPremium)
		assert.Contains(t, pc.Pricing, entitlement.TierEnterprise)
		require.NotNil(t, pc.Discount)
		assert.Equal(t, subscription.BillingCycleYearly, pc.Discount.Cycle)
		assert.Positive(t, pc.Discount.Percent)
	})

	t.Run("unknown target tier is rejected", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), nil)

		_, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.Tier("platinum"), nil)
		assert.ErrorIs(t, err, upgrade.ErrUnknownTier)
	})

	t.Run("pricing source failure aborts with no partial flow", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		pricingErr := errors.New("pricing service down")
		pricing := &mockPricingSource{}
		pricing.On("SubscriptionPricing", mock.Anything).Return(nil, pricingErr)
		gen := upgrade.NewGenerator(freeUserLookup(userID), upgrade.NewMemPromptStore(), pricing)

		steps, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.TierPremium, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, upgrade.ErrFailedToLoadPricing)
		assert.ErrorIs(t, err, pricingErr)
		assert.Nil(t, steps)
	})

	t.Run("subscription lookup failure aborts flow generation", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		lookupErr := errors.New("connection refused")
		subs := &mockSubscriptionLookup{}
		subs.On("GetUserActiveSubscription", mock.Anything, userID).Return(nil, lookupErr)
		gen := upgrade.NewGenerator(subs, upgrade.NewMemPromptStore(), nil)

		steps, err := gen.GenerateUpgradeFlow(context.Background(), userID,
			entitlement.TierPremium, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, lookupErr)
		assert.Nil(t, steps)
	})
}
