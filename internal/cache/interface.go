package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins a prefix and its qualifiers with ':'.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

const (
	DietPlanKeyPrefix    = "dietplan"
	ProductKeyPrefix     = "product"
	CategoryKeyPrefix    = "category"
	RecipeKeyPrefix      = "recipe"
	PartnershipKeyPrefix = "partnership"
)

// Fetch reads key from c, falling back to load on a miss and populating the
// cache with its result. Cache failures are logged and never fail the read.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T

	if c != nil {
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			slog.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return value, nil
}
