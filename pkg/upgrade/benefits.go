package upgrade

import (
	"slices"

	"github.com/lv-asc/vangarments/pkg/entitlement"
)

// featureBenefits is the per-feature benefits side table used in prompt
// content. Features without an entry fall back to defaultBenefits.
var featureBenefits = map[entitlement.FeatureID][]string{
	entitlement.FeatureWardrobeCataloging: {
		"Unlimited wardrobe items",
		"Bulk import and advanced tagging",
		"Wardrobe value tracking",
	},
	entitlement.FeatureOutfitCreation: {
		"Unlimited saved outfits",
		"Seasonal outfit planning",
		"Outfit calendar sync",
	},
	entitlement.FeatureSocialFollows: {
		"Unlimited follows",
		"Priority placement in follower feeds",
	},
	entitlement.FeatureMarketplaceTrading: {
		"Buy, sell and trade without restrictions",
		"Reduced commission on sales",
		"Seller protection on every trade",
	},
	entitlement.FeatureAdvancedAnalytics: {
		"Cost-per-wear and resale value insights",
		"Wardrobe utilization reports",
	},
	entitlement.FeatureAPIAccess: {
		"Full REST API access",
		"Webhook notifications",
	},
	entitlement.FeatureBrandStorefront: {
		"Branded storefront with curated collections",
		"Store-level analytics",
	},
}

var defaultBenefits = []string{
	"Unlock premium features",
	"Priority support",
}

// tierBenefits feeds the value_proposition step of the upgrade flow.
var tierBenefits = map[entitlement.Tier][]string{
	entitlement.TierPremium: {
		"Unlimited wardrobe items, outfits and follows",
		"Marketplace trading and listing promotion",
		"Advanced wardrobe analytics",
		"Priority support",
	},
	entitlement.TierEnterprise: {
		"Everything in Premium",
		"Brand storefront and custom branding",
		"Advertising and data intelligence",
		"Full API access",
	},
}

func benefitsFor(id entitlement.FeatureID) []string {
	if b, ok := featureBenefits[id]; ok {
		return slices.Clone(b)
	}
	return slices.Clone(defaultBenefits)
}
