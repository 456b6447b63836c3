package countries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key under which RedisCached stores the list.
const DefaultRedisKey = "formguard:countries"

// RedisCached shares the country list between instances through Redis. Redis
// failures are logged and bypassed: the source is queried directly and the
// request still succeeds. A non-positive ttl stores without expiry.
func RedisCached(src Source, client redis.UniversalClient, key string, ttl time.Duration, log *slog.Logger) Source {
	if key == "" {
		key = DefaultRedisKey
	}
	if ttl < 0 {
		ttl = 0
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return SourceFunc(func(ctx context.Context) ([]string, error) {
		raw, err := client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var names []string
			if jerr := json.Unmarshal(raw, &names); jerr == nil && len(names) > 0 {
				return names, nil
			}
			log.WarnContext(ctx, "discarding malformed cached country list", slog.String("key", key))
		case !errors.Is(err, redis.Nil):
			log.WarnContext(ctx, "redis read failed", slog.String("key", key), slog.Any("error", err))
		}

		names, err := src.Countries(ctx)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(names)
		if err == nil {
			err = client.Set(ctx, key, payload, ttl).Err()
		}
		if err != nil {
			log.WarnContext(ctx, "redis write failed", slog.String("key", key), slog.Any("error", err))
		}
		return names, nil
	})
}
