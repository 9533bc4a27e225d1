package usage

import (
	"context"

	"github.com/google/uuid"
)

// Snapshot holds a user's current usage counters. Snapshots are ephemeral:
// recomputed on each query from underlying counts, never owned or mutated
// by the entitlement core.
type Snapshot struct {
	WardrobeItems       int64 `json:"wardrobeItems"`
	Outfits             int64 `json:"outfits"`
	SocialFollows       int64 `json:"socialFollows"`
	MarketplaceListings int64 `json:"marketplaceListings"`
	MonthlyUploads      int64 `json:"monthlyUploads"`
}

// Provider supplies usage snapshots for users. Implementations must be fast;
// the snapshot is read on every limit evaluation.
type Provider interface {
	GetUserFeatureUsage(ctx context.Context, userID uuid.UUID) (Snapshot, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, userID uuid.UUID) (Snapshot, error)

func (f ProviderFunc) GetUserFeatureUsage(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	return f(ctx, userID)
}

// Static returns a Provider that serves a fixed snapshot for every user.
// Intended for tests and local development.
func Static(s Snapshot) Provider {
	return ProviderFunc(func(context.Context, uuid.UUID) (Snapshot, error) {
		return s, nil
	})
}
