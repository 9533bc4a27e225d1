package entitlement

import (
	"slices"

	"github.com/lv-asc/vangarments/pkg/usage"
)

// catalog is the authoritative feature table. Declaration order is
// meaningful: list operations and limit reports preserve it.
var catalog = []Feature{
	{
		ID:          FeatureWardrobeCataloging,
		Name:        "Wardrobe Cataloging",
		Description: "Catalog garments with photos, brands and sizing details",
		Category:    CategoryCore,
		MinTier:     TierFree,
		Limit:       100,
		Unit:        "items",
		WarnPercent: 80,
	},
	{
		ID:          FeatureOutfitCreation,
		Name:        "Outfit Creation",
		Description: "Compose and save outfits from cataloged garments",
		Category:    CategoryCore,
		MinTier:     TierFree,
		Limit:       50,
		Unit:        "outfits",
		WarnPercent: 90,
	},
	{
		ID:          FeatureStyleFeed,
		Name:        "Style Feed",
		Description: "Browse the personalized style feed",
		Category:    CategoryCore,
		MinTier:     TierFree,
	},
	{
		ID:          FeatureSocialFollows,
		Name:        "Social Follows",
		Description: "Follow other members and brands",
		Category:    CategorySocial,
		MinTier:     TierFree,
		Limit:       50,
		Unit:        "follows",
		WarnPercent: 90,
	},
	{
		ID:              FeatureBasicSocialSharing,
		Name:            "Basic Social Sharing",
		Description:     "Share outfits to linked social accounts",
		Category:        CategorySocial,
		MinTier:         TierFree,
		RequiresLinking: true,
	},
	{
		ID:          FeatureMarketplaceTrading,
		Name:        "Marketplace Trading",
		Description: "Buy, sell and trade garments on the marketplace",
		Category:    CategoryMarketplace,
		MinTier:     TierPremium,
	},
	{
		ID:          FeatureListingPromotion,
		Name:        "Listing Promotion",
		Description: "Boost marketplace listings in search and feeds",
		Category:    CategoryMarketplace,
		MinTier:     TierPremium,
	},
	{
		ID:          FeatureBrandStorefront,
		Name:        "Brand Storefront",
		Description: "Operate a branded store with curated collections",
		Category:    CategoryProfessional,
		MinTier:     TierEnterprise,
	},
	{
		ID:          FeatureAdvertisingAccess,
		Name:        "Advertising Access",
		Description: "Run ad campaigns across the platform",
		Category:    CategoryProfessional,
		MinTier:     TierEnterprise,
		OverrideKey: "advertisingAccess",
	},
	{
		ID:          FeatureCustomBranding,
		Name:        "Custom Branding",
		Description: "Apply custom branding to storefront and listings",
		Category:    CategoryProfessional,
		MinTier:     TierEnterprise,
		OverrideKey: "customBranding",
	},
	{
		ID:          FeatureAPIAccess,
		Name:        "API Access",
		Description: "Programmatic access to catalog and marketplace data",
		Category:    CategoryProfessional,
		MinTier:     TierEnterprise,
		OverrideKey: "apiAccess",
	},
	{
		ID:          FeatureAdvancedAnalytics,
		Name:        "Advanced Analytics",
		Description: "Wardrobe value, wear frequency and resale analytics",
		Category:    CategoryAnalytics,
		MinTier:     TierPremium,
		OverrideKey: "advancedAnalytics",
	},
	{
		ID:          FeatureDataIntelligence,
		Name:        "Data Intelligence",
		Description: "Market trend and demand intelligence reports",
		Category:    CategoryAnalytics,
		MinTier:     TierEnterprise,
		OverrideKey: "dataIntelligence",
	},
	{
		ID:          FeaturePrioritySupport,
		Name:        "Priority Support",
		Description: "Front-of-queue support with dedicated response times",
		Category:    CategoryOther,
		MinTier:     TierPremium,
		OverrideKey: "prioritySupport",
	},
}

// catalogByID is derived from catalog at init for O(1) lookups.
var catalogByID = func() map[FeatureID]Feature {
	m := make(map[FeatureID]Feature, len(catalog))
	for _, f := range catalog {
		m[f.ID] = f
	}
	return m
}()

// usageCounters maps each usage-limited feature to its snapshot counter.
// Order here matches catalog declaration order and drives limit reports.
var usageCounters = []struct {
	Feature FeatureID
	Current func(usage.Snapshot) int64
}{
	{FeatureWardrobeCataloging, func(s usage.Snapshot) int64 { return s.WardrobeItems }},
	{FeatureOutfitCreation, func(s usage.Snapshot) int64 { return s.Outfits }},
	{FeatureSocialFollows, func(s usage.Snapshot) int64 { return s.SocialFollows }},
}

// AllFeatures returns the full feature catalog in declaration order.
// The returned slice is a copy; callers may modify it freely.
func AllFeatures() []Feature {
	return slices.Clone(catalog)
}

// CatalogFeature looks up a single feature definition by ID.
func CatalogFeature(id FeatureID) (Feature, error) {
	f, ok := catalogByID[id]
	if !ok {
		return Feature{}, ErrFeatureNotFound
	}
	return f, nil
}

// FeaturesByCategory returns catalog features in the given category.
func FeaturesByCategory(cat Category) []Feature {
	out := make([]Feature, 0, len(catalog))
	for _, f := range catalog {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// FeaturesByTier returns catalog features whose minimum tier is exactly tier.
func FeaturesByTier(tier Tier) []Feature {
	out := make([]Feature, 0, len(catalog))
	for _, f := range catalog {
		if f.MinTier == tier {
			out = append(out, f)
		}
	}
	return out
}
