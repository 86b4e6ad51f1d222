package tiles

import (
	"sync"

	"gioui.org/op/paint"
)

// ImageOpCache memoizes Gio image operations so tile textures are uploaded
// once per tile rather than once per frame.
type ImageOpCache struct {
	mu  sync.RWMutex
	ops map[string]paint.ImageOp
}

func NewImageOpCache() *ImageOpCache {
	return &ImageOpCache{ops: make(map[string]paint.ImageOp)}
}

func (c *ImageOpCache) Get(key string) (paint.ImageOp, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	op, ok := c.ops[key]
	return op, ok
}

func (c *ImageOpCache) Set(key string, op paint.ImageOp) {
	c.mu.Lock()
	c.ops[key] = op
	c.mu.Unlock()
}

func (c *ImageOpCache) Clear() {
	c.mu.Lock()
	c.ops = make(map[string]paint.ImageOp)
	c.mu.Unlock()
}
