package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

// Cache memoizes the normalized catalog for the life of the process.
// Failed loads are not memoized, so the next Ensure retries.
type Cache struct {
	src  Source
	norm Normalizer
	log  *zap.Logger

	group singleflight.Group

	mu     sync.RWMutex
	cards  []models.NormalizedCard
	loaded bool
}

func NewCache(src Source, norm Normalizer, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{src: src, norm: norm, log: logger}
}

// Ensure returns the catalog, fetching it at most once at a time. The
// returned slice is shared and must be treated as read-only.
//
// ctx only bounds this caller's wait; the shared fetch keeps going so other
// waiters still get their result.
func (c *Cache) Ensure(ctx context.Context) ([]models.NormalizedCard, error) {
	if cards, ok := c.cached(); ok {
		return cards, nil
	}

	ch := c.group.DoChan("catalog", func() (any, error) {
		if cards, ok := c.cached(); ok {
			return cards, nil
		}

		raw, err := c.src.FetchAll(context.WithoutCancel(ctx))
		if err != nil {
			c.log.Warn("catalog fetch failed", zap.String("source", c.src.Name()), zap.Error(err))
			return nil, err
		}

		cards := c.norm.NormalizeAll(raw)
		c.mu.Lock()
		c.cards = cards
		c.loaded = true
		c.mu.Unlock()

		c.log.Info("catalog loaded", zap.String("source", c.src.Name()), zap.Int("cards", len(cards)))
		return cards, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.NormalizedCard), nil
	}
}

// Loaded reports whether a catalog is memoized.
func (c *Cache) Loaded() bool {
	_, ok := c.cached()
	return ok
}

// Invalidate drops the memo; the next Ensure fetches again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cards = nil
	c.loaded = false
	c.mu.Unlock()
}

func (c *Cache) cached() ([]models.NormalizedCard, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cards, c.loaded
}
