package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGProvider counts usage from the marketplace tables in a single
// round-trip. Counters are recomputed on every call; freshness between two
// calls is not transactionally linked to any access check.
type PGProvider struct {
	pool *pgxpool.Pool
}

// NewPGProvider returns a Provider backed by the given connection pool.
// Panics on a nil pool to fail fast during wiring.
func NewPGProvider(pool *pgxpool.Pool) *PGProvider {
	if pool == nil {
		panic("usage: pgxpool is required")
	}
	return &PGProvider{pool: pool}
}

func (p *PGProvider) GetUserFeatureUsage(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	var snap Snapshot
	err := p.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM wardrobe_items WHERE user_id = $1),
			(SELECT count(*) FROM outfits WHERE user_id = $1),
			(SELECT count(*) FROM social_follows WHERE follower_id = $1),
			(SELECT count(*) FROM marketplace_listings WHERE seller_id = $1 AND status = 'active'),
			(SELECT count(*) FROM uploads WHERE user_id = $1 AND created_at >= date_trunc('month', now()))`,
		userID,
	).Scan(&snap.WardrobeItems, &snap.Outfits, &snap.SocialFollows,
		&snap.MarketplaceListings, &snap.MonthlyUploads)
	if err != nil {
		return Snapshot{}, errors.Join(ErrFailedToCountUsage, err)
	}
	return snap, nil
}
