package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const accountListingKeyPrefix = "coa:listing:"

// RedisAccountCache is a redis-backed AccountListingCache for multi-node
// deployments. Cache failures are logged and treated as misses; the registry
// always falls back to the repository.
type RedisAccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAccountCache creates a redis-backed cache with the given entry TTL.
func NewRedisAccountCache(client *redis.Client, ttl time.Duration) *RedisAccountCache {
	return &RedisAccountCache{client: client, ttl: ttl}
}

var _ AccountListingCache = (*RedisAccountCache)(nil)

// Get returns the cached listing for an organization if present.
func (c *RedisAccountCache) Get(ctx context.Context, organizationID string) ([]domain.Account, bool) {
	payload, err := c.client.Get(ctx, accountListingKeyPrefix+organizationID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("account cache read failed", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		}
		return nil, false
	}

	var accounts []domain.Account
	if err := json.Unmarshal(payload, &accounts); err != nil {
		slog.Warn("account cache payload corrupt, dropping", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		c.Invalidate(ctx, organizationID)
		return nil, false
	}
	return accounts, true
}

// Set stores the listing for an organization.
func (c *RedisAccountCache) Set(ctx context.Context, organizationID string, accounts []domain.Account) {
	payload, err := json.Marshal(accounts)
	if err != nil {
		slog.Warn("account cache marshal failed", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, accountListingKeyPrefix+organizationID, payload, c.ttl).Err(); err != nil {
		slog.Warn("account cache write failed", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
	}
}

// Invalidate drops the organization's cached listing.
func (c *RedisAccountCache) Invalidate(ctx context.Context, organizationID string) {
	if err := c.client.Del(ctx, accountListingKeyPrefix+organizationID).Err(); err != nil {
		slog.Warn("account cache invalidation failed", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
	}
}
