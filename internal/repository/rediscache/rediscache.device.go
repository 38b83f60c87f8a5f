// FilePath: internal/repository/rediscache/rediscache.device.go
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/config"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/eibon93/vcelstva-hub/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceCache is a read-through cache for device-by-identifier lookups on
// the ingestion hot path. Every incoming message resolves its device; the
// cache keeps that lookup off Postgres between invalidations.
type DeviceCache struct {
	client *redis.Client
	source repository.DeviceLookup
	ttl    time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewDeviceCache(client *redis.Client, source repository.DeviceLookup, ttl time.Duration) *DeviceCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DeviceCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

// GetByIdentifier returns the cached device or falls through to the
// backing repository. Cache misses and redis failures are both served from
// the source; a broken cache never breaks ingestion.
func (c *DeviceCache) GetByIdentifier(ctx context.Context, identifier string) (*models.Device, error) {
	key := cacheKey(identifier)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		device := &models.Device{}
		if err := json.Unmarshal(data, device); err == nil {
			return device, nil
		}
		nuts.L.Warnf("[DeviceCache] Corrupt cache entry for %s, reloading", identifier)
	} else if err != redis.Nil {
		nuts.L.Warnf("[DeviceCache] Redis error for %s: %v", identifier, err)
	}

	device, err := c.source.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(device); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			nuts.L.Warnf("[DeviceCache] Failed to cache device %s: %v", identifier, err)
		}
	}

	return device, nil
}

// Invalidate drops the cache entry for a device identifier. Called after
// device updates and deletions.
func (c *DeviceCache) Invalidate(ctx context.Context, identifier string) {
	if err := c.client.Del(ctx, cacheKey(identifier)).Err(); err != nil {
		nuts.L.Warnf("[DeviceCache] Failed to invalidate device %s: %v", identifier, err)
	}
}

func cacheKey(identifier string) string {
	return "vcelstva:device:" + identifier
}
