package entitlement

// Tier represents a subscription tier in ascending rank order.
type Tier string

const (
	TierFree       Tier = "free"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// tierRanks orders tiers for monotonic feature gating: every feature
// available at a tier is available at all higher tiers.
var tierRanks = map[Tier]int{
	TierFree:       0,
	TierPremium:    1,
	TierEnterprise: 2,
}

// Rank returns the numeric rank of the tier. Unknown tiers rank below free
// so a malformed subscription record never grants paid features.
func (t Tier) Rank() int {
	if r, ok := tierRanks[t]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether t grants everything other grants.
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

// Valid reports whether the tier is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// ParseTier normalizes a raw subscription type string into a Tier.
// "basic" is a legacy alias for the free tier.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "free", "basic", "":
		return TierFree, true
	case "premium":
		return TierPremium, true
	case "enterprise":
		return TierEnterprise, true
	}
	return TierFree, false
}

// Category groups catalog features for presentation.
type Category string

const (
	CategoryCore         Category = "core"
	CategorySocial       Category = "social"
	CategoryMarketplace  Category = "marketplace"
	CategoryProfessional Category = "professional"
	CategoryAnalytics    Category = "analytics"
	CategoryOther        Category = "other"
)

// FeatureID identifies a feature in the catalog. The set of valid IDs is
// closed; unknown IDs are only reachable through dynamic input such as an
// API request path.
type FeatureID string

const (
	FeatureWardrobeCataloging FeatureID = "wardrobe_cataloging"
	FeatureOutfitCreation     FeatureID = "outfit_creation"
	FeatureStyleFeed          FeatureID = "style_feed"
	FeatureSocialFollows      FeatureID = "social_follows"
	FeatureBasicSocialSharing FeatureID = "basic_social_sharing"
	FeatureMarketplaceTrading FeatureID = "marketplace_trading"
	FeatureListingPromotion   FeatureID = "listing_promotion"
	FeatureBrandStorefront    FeatureID = "brand_storefront"
	FeatureAdvertisingAccess  FeatureID = "advertising_access"
	FeatureCustomBranding     FeatureID = "custom_branding"
	FeatureAPIAccess          FeatureID = "api_access"
	FeatureAdvancedAnalytics  FeatureID = "advanced_analytics"
	FeatureDataIntelligence   FeatureID = "data_intelligence"
	FeaturePrioritySupport    FeatureID = "priority_support"
)

// Feature describes a single catalog entry. Entries are immutable static
// data defined once in the catalog.
type Feature struct {
	ID          FeatureID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	MinTier     Tier      `json:"min_tier"`

	// RequiresLinking gates the feature on an external account link
	// asserted by the caller, independent of tier.
	RequiresLinking bool `json:"requires_linking,omitempty"`

	// Limit is the usage cap applied to free-tier users. Zero means the
	// feature is not usage-limited. The cap is an inclusive ceiling:
	// usage at the cap is already exceeded.
	Limit       int64  `json:"limit,omitempty"`
	Unit        string `json:"unit,omitempty"`
	WarnPercent int    `json:"warn_percent,omitempty"`

	// OverrideKey names the subscription feature-override flag that can
	// grant or revoke this feature independently of tier rank.
	OverrideKey string `json:"override_key,omitempty"`
}

// Limited reports whether the feature carries a usage cap.
func (f Feature) Limited() bool {
	return f.Limit > 0
}

// AccessDecision is the result of a feature access evaluation.
// A denial is a normal result, not an error.
type AccessDecision struct {
	HasAccess       bool   `json:"hasAccess"`
	Reason          string `json:"reason,omitempty"`
	UpgradeRequired Tier   `json:"upgradeRequired,omitempty"`
}

// AccessContext carries caller-supplied evaluation hints.
type AccessContext struct {
	CurrentUsage      int64  `json:"currentUsage"`
	HasAccountLinking bool   `json:"hasAccountLinking"`
	Action            string `json:"action,omitempty"`
}

// LimitWarning flags a usage-limited feature approaching its cap.
type LimitWarning struct {
	Feature    FeatureID `json:"feature"`
	Percentage float64   `json:"percentage"`
}

// LimitBlock flags a usage-limited feature at or over its cap.
type LimitBlock struct {
	Feature FeatureID `json:"feature"`
	Current int64     `json:"current"`
	Limit   int64     `json:"limit"`
}

// LimitsReport aggregates the usage state of all limited features for a
// user. Both lists follow catalog declaration order.
type LimitsReport struct {
	Warnings []LimitWarning `json:"warnings"`
	Blocked  []LimitBlock   `json:"blocked"`
}

// FeatureBreakdown partitions the catalog by tier gate for one user.
// Usage exhaustion never moves a feature into Restricted; exhausted caps
// are surfaced separately through CheckUsageLimits.
type FeatureBreakdown struct {
	Available  []Feature `json:"available"`
	Restricted []Feature `json:"restricted,omitempty"`
}
