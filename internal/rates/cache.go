package rates

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/adminsuite/pricing/internal/domain/currency"
)

// Cache decorates a Provider with a TTL cache and stale-on-error fallback.
//
// Within the TTL every caller gets the same snapshot without touching the
// upstream feed. When a refresh fails, the previous snapshot keeps being
// served for up to staleGrace past its TTL; after that callers receive the
// zero snapshot, which the conversion layer treats as "rates unavailable".
type Cache struct {
	upstream   Provider
	ttl        time.Duration
	staleGrace time.Duration
	now        func() time.Time

	mu       sync.Mutex
	snapshot currency.Rates
	loaded   bool
}

// NewCache wraps the upstream provider with the given TTL. The stale grace
// window defaults to ten times the TTL.
func NewCache(upstream Provider, ttl time.Duration) *Cache {
	return &Cache{
		upstream:   upstream,
		ttl:        ttl,
		staleGrace: 10 * ttl,
		now:        time.Now,
	}
}

// Snapshot returns the cached snapshot, refreshing it from upstream when the
// TTL has elapsed. It never returns an error: rate availability is a display
// concern, and a caller with no snapshot simply shows home-currency prices.
func (c *Cache) Snapshot(ctx context.Context) (currency.Rates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.loaded && now.Sub(c.snapshot.FetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	fresh, err := c.upstream.Snapshot(ctx)
	if err != nil {
		lg := zctx.From(ctx)
		if c.loaded && now.Sub(c.snapshot.FetchedAt) < c.ttl+c.staleGrace {
			lg.Warn("Rate feed refresh failed, serving stale snapshot",
				zap.Error(err),
				zap.Time("fetched_at", c.snapshot.FetchedAt),
			)
			return c.snapshot, nil
		}
		lg.Error("Rate feed unavailable, conversions disabled", zap.Error(err))
		return currency.Rates{}, nil
	}

	c.snapshot = fresh
	c.loaded = true
	return c.snapshot, nil
}
