// Package usage supplies per-user usage counters for limit evaluation.
//
// A Snapshot carries the five counters the entitlement engine cares about.
// Snapshots are recomputed on each query; staleness between two reads is
// acceptable and expected since counters change without transactional
// linkage to access checks.
//
// Implementations:
//
//   - PGProvider counts from the marketplace tables in one round-trip
//   - CachedProvider adds a short-TTL Redis read-through cache
//   - Static serves a fixed snapshot for tests
//
//	provider := usage.NewCachedProvider(
//		usage.NewPGProvider(pool), redisClient, 30*time.Second, log)
//	snap, err := provider.GetUserFeatureUsage(ctx, userID)
package usage
