package statscache

import (
	"context"
	"sync"
	"time"

	"plantcare/internal/carelog/models"
)

const DefaultTTL = 5 * time.Minute

// MemoryCache keeps the statistics in process. It serves single-instance
// deployments without Redis.
type MemoryCache struct {
	mu      sync.Mutex
	stats   *models.Stats
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context) (*models.Stats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	return clone(c.stats), true, nil
}

func (c *MemoryCache) Set(_ context.Context, st *models.Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = clone(st)
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	return nil
}

func clone(st *models.Stats) *models.Stats {
	cp := *st
	cp.ByType = make(map[string]int, len(st.ByType))
	for k, v := range st.ByType {
		cp.ByType[k] = v
	}
	return &cp
}
