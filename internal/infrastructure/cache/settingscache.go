package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quiniela-inc/quiniela/internal/application/setting/dto"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

const (
	settingsCachePrefix = "settings:"
	settingsScanCount   = 200
)

// SettingsCache is a Redis-backed cache of fully resolved settings. Every
// operation is best effort: cache failures degrade to repository reads.
type SettingsCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewSettingsCache creates a new SettingsCache
func NewSettingsCache(client *redis.Client, log logger.Interface) *SettingsCache {
	return &SettingsCache{
		client: client,
		logger: log.With("component", "cache.settings"),
	}
}

// Get retrieves a resolved setting, reporting a miss on any error.
func (c *SettingsCache) Get(ctx context.Context, tenantSID, poolSID, key string) (*dto.ResolvedSetting, bool) {
	data, err := c.client.Get(ctx, c.cacheKey(tenantSID, poolSID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("settings cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var resolved dto.ResolvedSetting
	if err := json.Unmarshal(data, &resolved); err != nil {
		c.logger.Warnw("settings cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &resolved, true
}

// Set stores a resolved setting with the given TTL.
func (c *SettingsCache) Set(ctx context.Context, tenantSID, poolSID, key string, value *dto.ResolvedSetting, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("failed to marshal resolved setting", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, c.cacheKey(tenantSID, poolSID, key), data, ttl).Err(); err != nil {
		c.logger.Warnw("settings cache write failed", "key", key, "error", err)
	}
}

// InvalidateKey drops every resolved entry for the key across all tenants
// and pools. SIDs never contain colons, so the key is always the last
// segment of the cache key.
func (c *SettingsCache) InvalidateKey(ctx context.Context, key string) {
	pattern := settingsCachePrefix + "*:*:" + key

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, settingsScanCount).Result()
		if err != nil {
			c.logger.Warnw("settings cache scan failed", "key", key, "error", err)
			return
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warnw("settings cache invalidation failed", "key", key, "error", err)
				return
			}
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (c *SettingsCache) cacheKey(tenantSID, poolSID, key string) string {
	return settingsCachePrefix + tenantSID + ":" + poolSID + ":" + key
}
