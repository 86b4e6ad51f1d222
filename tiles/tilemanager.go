package tiles

import (
	"context"
	"image"
	"sync"

	"slippymap/tiles/worker"
)

// TileProvider produces the image for a single map tile.
type TileProvider interface {
	GetTile(t Tile) (image.Image, error)
}

// NotifyingTileProvider is implemented by providers whose results may be
// upgraded after the fact, such as a fallback placeholder replaced by the
// real tile once it arrives.
type NotifyingTileProvider interface {
	TileProvider
	SetOnLoadCallback(func())
}

// TileManager serves tile images from a cache, falling back to its
// provider on a miss, and prefetches upcoming tiles on a worker pool.
type TileManager struct {
	cache    Cache
	provider TileProvider
	pool     *worker.Pool

	mu     sync.Mutex
	cancel context.CancelFunc
	onLoad func()
}

// NewTileManager wraps a provider with a cache. A nil cache gets a fresh
// ImageCache. Providers that upgrade tiles asynchronously are wired so an
// upgrade flushes stale cache entries and notifies the load callback.
func NewTileManager(provider TileProvider, cache Cache) *TileManager {
	if cache == nil {
		cache = NewImageCache()
	}
	tm := &TileManager{
		cache:    cache,
		provider: provider,
		pool:     worker.NewPool(4),
	}
	if np, ok := provider.(NotifyingTileProvider); ok {
		np.SetOnLoadCallback(tm.upgraded)
	}
	return tm
}

// SetOnLoadCallback registers a notification for newly available tile
// images, typically used to invalidate the window.
func (tm *TileManager) SetOnLoadCallback(fn func()) {
	tm.mu.Lock()
	tm.onLoad = fn
	tm.mu.Unlock()
}

// GetTile returns the tile image, loading it through the provider on a
// cache miss.
func (tm *TileManager) GetTile(t Tile) (image.Image, error) {
	key := t.Key()
	if img, ok := tm.cache.Get(key); ok {
		return img, nil
	}
	img, err := tm.provider.GetTile(t)
	if err != nil {
		return nil, err
	}
	tm.cache.Set(key, img)
	tm.notify()
	return img, nil
}

// Prefetch queues background loads for the given tiles, cancelling loads
// queued by the previous call that have not started yet. Invalid tile
// indices are skipped.
func (tm *TileManager) Prefetch(ts []Tile) {
	tm.mu.Lock()
	if tm.cancel != nil {
		tm.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	tm.cancel = cancel
	tm.mu.Unlock()

	for _, t := range ts {
		t := t
		if !t.Valid() {
			continue
		}
		tm.pool.Submit(worker.Task{
			Ctx: ctx,
			Work: func() error {
				_, err := tm.GetTile(t)
				return err
			},
		})
	}
}

// Close cancels pending prefetches and stops the workers.
func (tm *TileManager) Close() {
	tm.mu.Lock()
	if tm.cancel != nil {
		tm.cancel()
		tm.cancel = nil
	}
	tm.mu.Unlock()
	tm.pool.Shutdown()
}

func (tm *TileManager) upgraded() {
	tm.cache.Clear()
	tm.notify()
}

func (tm *TileManager) notify() {
	tm.mu.Lock()
	fn := tm.onLoad
	tm.mu.Unlock()
	if fn != nil {
		fn()
	}
}
