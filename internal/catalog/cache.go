package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sensorhub/internal/models"
)

// Lister loads the full sensor catalog from the durable store.
type Lister interface {
	ListAll(ctx context.Context) ([]models.Sensor, error)
}

// Cache holds the sensor catalog for a bounded lifetime so a poll pass does
// not refetch it every cycle. An entry stays fresh while accessed within the
// sliding window, but is force-expired once the absolute TTL elapses no matter
// the access pattern. The cache never serves writes; the store stays the
// source of truth. Concurrent reloads after expiry are not deduplicated —
// racing callers may each refetch, which is harmless.
type Cache struct {
	lister  Lister
	ttl     time.Duration
	sliding time.Duration
	now     func() time.Time

	mu         sync.Mutex
	sensors    []models.Sensor
	loadedAt   time.Time
	accessedAt time.Time
}

// NewCache returns a catalog cache with the given expiry policy. The clock is
// injectable for tests; pass nil to use the wall clock.
func NewCache(lister Lister, ttl, sliding time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		lister:  lister,
		ttl:     ttl,
		sliding: sliding,
		now:     now,
	}
}

// Get returns the cached catalog, reloading it from the store when expired.
func (c *Cache) Get(ctx context.Context) ([]models.Sensor, error) {
	now := c.now()

	c.mu.Lock()
	if c.sensors != nil && c.fresh(now) {
		c.accessedAt = now
		sensors := c.sensors
		c.mu.Unlock()
		return sensors, nil
	}
	c.mu.Unlock()

	sensors, err := c.lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}

	c.mu.Lock()
	c.sensors = sensors
	c.loadedAt = now
	c.accessedAt = now
	c.mu.Unlock()

	return sensors, nil
}

// Invalidate drops the cached catalog, forcing a reload on next access.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.sensors = nil
	c.mu.Unlock()
}

// fresh applies the expiry policy as a pure function of load time, last
// access time and now. An access inside the sliding window extends freshness,
// but never past the absolute TTL, so an entry younger than the TTL is served
// and one older is always reloaded. Caller holds the lock.
func (c *Cache) fresh(now time.Time) bool {
	if now.Sub(c.loadedAt) >= c.ttl {
		return false
	}
	if now.Sub(c.accessedAt) < c.sliding {
		return true
	}
	return now.Sub(c.loadedAt) < c.ttl
}
