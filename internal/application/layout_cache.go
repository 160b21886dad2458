package application

import (
	"context"
	"sync"

	"github.com/wms-platform/voicepick-service/internal/domain"
	"github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
)

// LayoutProvider resolves a warehouse id to its location grammar.
// Warehouse id 0 always resolves to the fixed default layout.
type LayoutProvider interface {
	Layout(ctx context.Context, warehouseID int64) (*domain.WarehouseLayout, error)
}

// LayoutSource loads layout documents from a backing store
type LayoutSource interface {
	FindByWarehouseID(ctx context.Context, warehouseID int64) (*domain.WarehouseLayout, error)
}

// LayoutCache is a lazy read-through cache over a layout source.
// Entries never expire: a layout change requires Invalidate or a
// process restart. This staleness window is accepted.
type LayoutCache struct {
	source   LayoutSource
	fallback *domain.WarehouseLayout
	logger   *logging.Logger

	mu      sync.RWMutex
	layouts map[int64]*domain.WarehouseLayout
}

// NewLayoutCache creates a cache over the given source. A nil source
// restricts the provider to the default layout.
func NewLayoutCache(source LayoutSource, logger *logging.Logger) *LayoutCache {
	return &LayoutCache{
		source:   source,
		fallback: domain.DefaultLayout(),
		logger:   logger.WithComponent("layout-cache"),
		layouts:  make(map[int64]*domain.WarehouseLayout),
	}
}

// Layout implements LayoutProvider
func (c *LayoutCache) Layout(ctx context.Context, warehouseID int64) (*domain.WarehouseLayout, error) {
	if warehouseID == 0 {
		return c.fallback, nil
	}

	c.mu.RLock()
	layout, ok := c.layouts[warehouseID]
	c.mu.RUnlock()
	if ok {
		return layout, nil
	}

	if c.source == nil {
		return nil, errors.ErrConfigNotFound("warehouse")
	}

	loaded, err := c.source.FindByWarehouseID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	// The source may hand out a shared document (the file provider
	// does), so normalize a private copy: concurrent misses must never
	// rebuild the same compiled state.
	layout = loaded.Clone()
	if err := layout.Normalize(); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	c.mu.Lock()
	// Another request may have raced the load; last write wins, both
	// copies are equivalent.
	c.layouts[warehouseID] = layout
	c.mu.Unlock()

	c.logger.WithContext(ctx).Info("Layout loaded",
		"warehouseId", warehouseID,
		"sections", len(layout.Sections),
	)

	return layout, nil
}

// Invalidate drops a cached layout so the next lookup reloads it
func (c *LayoutCache) Invalidate(warehouseID int64) {
	c.mu.Lock()
	delete(c.layouts, warehouseID)
	c.mu.Unlock()
}

// InvalidateAll drops every cached layout
func (c *LayoutCache) InvalidateAll() {
	c.mu.Lock()
	c.layouts = make(map[int64]*domain.WarehouseLayout)
	c.mu.Unlock()
}
