package usage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "usage:snapshot:"

// CachedProvider is a read-through Redis cache in front of another
// Provider. Source errors propagate unchanged in meaning; cache
// infrastructure errors never turn into denials, the provider falls back
// to its source and logs the failure.
type CachedProvider struct {
	source Provider
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewCachedProvider wraps source with a Redis cache. A non-positive ttl
// defaults to one minute, short enough that counter staleness stays within
// the tolerance access checks already accept.
func NewCachedProvider(source Provider, client *redis.Client, ttl time.Duration, log *slog.Logger) *CachedProvider {
	if source == nil {
		panic("usage: source Provider is required")
	}
	if client == nil {
		panic("usage: redis client is required")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedProvider{source: source, client: client, ttl: ttl, log: log}
}

func (c *CachedProvider) GetUserFeatureUsage(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	key := cacheKeyPrefix + userID.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			return snap, nil
		}
		// Corrupted entry: drop it and fall through to the source.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "usage cache read failed, falling back to source",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	}

	snap, err := c.source.GetUserFeatureUsage(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	if raw, err := json.Marshal(snap); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "usage cache write failed",
				slog.String("user_id", userID.String()),
				slog.Any("error", errors.Join(ErrFailedToCacheUsage, err)))
		}
	}

	return snap, nil
}

// Invalidate drops the cached snapshot for a user, forcing the next read
// through to the source. Call after writes that change counters.
func (c *CachedProvider) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, cacheKeyPrefix+userID.String()).Err(); err != nil {
		return errors.Join(ErrFailedToCacheUsage, err)
	}
	return nil
}
