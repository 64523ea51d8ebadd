package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/storage"
)

// CatalogReader builds category attribute trees. CategoryAttributes is
// expected to fill the cache it was wired with.
type CatalogReader interface {
	ListCategories(ctx context.Context, categoryList *string) ([]storage.Category, error)
	CategoryAttributes(ctx context.Context, categoryID int64) (*storage.CategoryAttributes, error)
}

type CategoryCache struct {
	mu     sync.RWMutex
	cache  map[int64]*storage.CategoryAttributes
	logger *zap.Logger
}

func NewCategoryCache(logger *zap.Logger) *CategoryCache {
	return &CategoryCache{
		cache:  make(map[int64]*storage.CategoryAttributes),
		logger: logger,
	}
}

// Warm loads the attribute tree of every category.
func (c *CategoryCache) Warm(ctx context.Context, reader CatalogReader) error {
	c.logger.Info("loading category attributes into cache")
	categories, err := reader.ListCategories(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, category := range categories {
		if _, err := reader.CategoryAttributes(ctx, category.ID); err != nil {
			return fmt.Errorf("failed to load category %d: %w", category.ID, err)
		}
	}
	c.logger.Info("category cache loaded", zap.Int("categories", c.Len()))
	return nil
}

func (c *CategoryCache) Get(categoryID int64) (*storage.CategoryAttributes, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	attrs, found := c.cache[categoryID]
	if !found {
		return nil, false
	}
	return clone(attrs), true
}

func (c *CategoryCache) Set(categoryID int64, attrs *storage.CategoryAttributes) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[categoryID] = clone(attrs)
	metrics.CategoryCacheItems.Set(float64(len(c.cache)))
	c.logger.Debug("category cached", zap.Int64("category_id", categoryID))
}

func (c *CategoryCache) Invalidate(categoryID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[categoryID]; found {
		delete(c.cache, categoryID)
		metrics.CategoryCacheItems.Set(float64(len(c.cache)))
		c.logger.Debug("category evicted", zap.Int64("category_id", categoryID))
	}
}

func (c *CategoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[int64]*storage.CategoryAttributes)
	metrics.CategoryCacheItems.Set(0)
}

func (c *CategoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// clone copies the tree down to the per-attribute value slices so callers
// cannot mutate cached entries.
func clone(attrs *storage.CategoryAttributes) *storage.CategoryAttributes {
	out := *attrs
	out.Category.Stages = append([]string(nil), attrs.Category.Stages...)
	out.Attributes = make([]storage.AttributeWithValues, len(attrs.Attributes))
	for i, a := range attrs.Attributes {
		a.Values = append([]storage.AttributeValue(nil), a.Values...)
		out.Attributes[i] = a
	}
	return &out
}
