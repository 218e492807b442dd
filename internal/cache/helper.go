package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gigmarket/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// TTLs for the read-side caches. Derived fields are always computed in the
// store; the cache only shortens the window between identical reads and is
// invalidated on every owning write.
const (
	BaseInfoTTL    = 30 * time.Second
	OfferDetailTTL = 5 * time.Minute
)

// BaseInfoKey is the cache key for the aggregate base-info payload.
func BaseInfoKey() string {
	return "baseinfo"
}

// OfferDetailKey is the cache key for a single offer tier.
func OfferDetailKey(id uint) string {
	return fmt.Sprintf("offerdetail:%d", id)
}

// Aside implements the cache-aside pattern: on hit, dest is unmarshalled from
// the cached JSON; on miss, load runs and its result (already written into
// dest by the loader) is cached. When Redis is unavailable the loader runs
// directly and the cache is a no-op.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: fall through and repopulate.
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}

	if err := load(); err != nil {
		return err
	}

	encoded, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Invalidate drops the given keys. Errors are logged, never surfaced: a
// failed invalidation only shortens cache usefulness because TTLs bound
// staleness.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()))
	}
}

// InvalidateBaseInfo drops the aggregate stats entry. Called after every
// write that changes offer, review, or profile counts.
func InvalidateBaseInfo(ctx context.Context) {
	Invalidate(ctx, BaseInfoKey())
}

// InvalidateOfferDetails drops the cached tiers of one offer.
func InvalidateOfferDetails(ctx context.Context, detailIDs ...uint) {
	keys := make([]string, 0, len(detailIDs))
	for _, id := range detailIDs {
		keys = append(keys, OfferDetailKey(id))
	}
	Invalidate(ctx, keys...)
}
