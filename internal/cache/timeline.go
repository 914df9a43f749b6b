package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gramline-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// TimelineCache is a short-TTL Redis cache of composed timelines, keyed
// per viewer. It is invalidated when the viewer's follow set changes;
// like and comment counters may be stale for up to one TTL.
type TimelineCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTimelineCache creates a timeline cache backed by Redis
func NewTimelineCache(addr, password string, db int, ttl time.Duration) *TimelineCache {
	return &TimelineCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies the Redis connection
func (c *TimelineCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (c *TimelineCache) Close() error {
	return c.rdb.Close()
}

func timelineKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}

// Get returns the cached timeline for a viewer, if present
func (c *TimelineCache) Get(ctx context.Context, userID string) ([]models.TimelinePhoto, bool, error) {
	data, err := c.rdb.Get(ctx, timelineKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached timeline: %w", err)
	}

	var photos []models.TimelinePhoto
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached timeline: %w", err)
	}
	return photos, true, nil
}

// Set stores a viewer's composed timeline with the configured TTL
func (c *TimelineCache) Set(ctx context.Context, userID string, photos []models.TimelinePhoto) error {
	data, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	if err := c.rdb.Set(ctx, timelineKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache timeline: %w", err)
	}
	return nil
}

// Invalidate drops a viewer's cached timeline
func (c *TimelineCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.rdb.Del(ctx, timelineKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate timeline: %w", err)
	}
	return nil
}
