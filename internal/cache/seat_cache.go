package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mannar-express/service-seats/internal/domain/route"
	"github.com/mannar-express/service-seats/internal/domain/seat"
)

// DefaultTTL bounds how long a cached seat list may serve reads.
const DefaultTTL = 30 * time.Second

// DefaultSweepInterval is how often expired entries are evicted in the
// background to bound memory.
const DefaultSweepInterval = 5 * time.Minute

type entry struct {
	seats    []*seat.Seat
	storedAt time.Time
}

// SeatCache is a time-bounded in-memory cache of seat lists keyed by
// (route, date). It is owned by the service instance: the sweep goroutine has
// an explicit Start/Stop lifecycle and the clock is injectable for tests.
//
// The cache is process-local. A multi-instance deployment observes up to TTL
// staleness after a write on another instance.
type SeatCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	logger     *zap.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures a SeatCache.
type Option func(*SeatCache)

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) Option {
	return func(c *SeatCache) { c.now = now }
}

// WithTTL overrides the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *SeatCache) { c.ttl = ttl }
}

// WithSweepInterval overrides the background eviction interval.
func WithSweepInterval(interval time.Duration) Option {
	return func(c *SeatCache) { c.sweepEvery = interval }
}

// NewSeatCache creates a SeatCache with the default TTL and sweep interval.
func NewSeatCache(logger *zap.Logger, opts ...Option) *SeatCache {
	c := &SeatCache{
		entries:    make(map[string]entry),
		ttl:        DefaultTTL,
		sweepEvery: DefaultSweepInterval,
		now:        time.Now,
		logger:     logger,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(r route.Route, date string) string {
	return fmt.Sprintf("%s-%s", r, date)
}

// Get returns the cached seat list for (route, date), or false when the entry
// is absent or older than the TTL.
func (c *SeatCache) Get(r route.Route, date string) ([]*seat.Seat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cacheKey(r, date)]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.seats, true
}

// Put stores the seat list for (route, date), restarting its TTL.
func (c *SeatCache) Put(r route.Route, date string, seats []*seat.Seat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(r, date)] = entry{seats: seats, storedAt: c.now()}
}

// Invalidate drops the entry for (route, date). Every successful mutation on a
// seat-set must call this before the operation's response is returned.
func (c *SeatCache) Invalidate(r route.Route, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(r, date))
}

// Len returns the number of entries currently held, expired or not.
func (c *SeatCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Start runs the background sweep until Stop is called or the context is
// cancelled.
func (c *SeatCache) Start(ctx context.Context) {
	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// Stop signals the sweep goroutine to exit and waits for it.
func (c *SeatCache) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

func (c *SeatCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug("evicted expired seat cache entries", zap.Int("count", evicted))
	}
}
