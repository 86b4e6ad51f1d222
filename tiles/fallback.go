package tiles

import (
	"fmt"
	"image"
	"log"
	"sync"
)

// FallbackTileProvider serves tiles from a fallback provider while the
// primary loads in the background, and switches to the primary image once
// it has arrived. Loads are deduplicated per tile.
type FallbackTileProvider struct {
	primary  TileProvider
	fallback TileProvider

	mu      sync.Mutex
	ready   map[string]image.Image
	loading map[string]bool
	onLoad  func()
}

func NewFallbackTileProvider(primary, fallback TileProvider) *FallbackTileProvider {
	return &FallbackTileProvider{
		primary:  primary,
		fallback: fallback,
		ready:    make(map[string]image.Image),
		loading:  make(map[string]bool),
	}
}

// SetOnLoadCallback registers a notification for asynchronous upgrades
// from fallback to primary imagery.
func (p *FallbackTileProvider) SetOnLoadCallback(fn func()) {
	p.mu.Lock()
	p.onLoad = fn
	p.mu.Unlock()
}

func (p *FallbackTileProvider) GetTile(t Tile) (image.Image, error) {
	key := t.Key()

	p.mu.Lock()
	if img, ok := p.ready[key]; ok {
		p.mu.Unlock()
		return img, nil
	}
	starting := !p.loading[key]
	if starting {
		p.loading[key] = true
	}
	p.mu.Unlock()

	if starting {
		go p.load(t, key)
	}

	img, err := p.fallback.GetTile(t)
	if err != nil {
		return nil, fmt.Errorf("fallback tile %s: %w", key, err)
	}
	return img, nil
}

func (p *FallbackTileProvider) load(t Tile, key string) {
	img, err := p.primary.GetTile(t)

	p.mu.Lock()
	delete(p.loading, key)
	if err != nil {
		p.mu.Unlock()
		log.Printf("primary tile %s: %v", key, err)
		return
	}
	p.ready[key] = img
	fn := p.onLoad
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}
