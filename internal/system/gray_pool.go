package system

import (
	"image"
	"sync"
)

// GrayPool hands out *image.Gray buffers keyed by their bounds so that batch
// runs over same-sized pages reuse the grayscale scratch space.
type GrayPool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

var globalGrayPool = NewGrayPool()

func NewGrayPool() *GrayPool {
	return &GrayPool{pools: make(map[image.Rectangle]*sync.Pool)}
}

// GetGray returns a gray buffer with the given bounds from the shared pool.
// The contents are undefined.
func GetGray(rect image.Rectangle) *image.Gray {
	return globalGrayPool.Get(rect)
}

// PutGray returns a buffer to the shared pool.
func PutGray(img *image.Gray) {
	globalGrayPool.Put(img)
}

func (p *GrayPool) Get(rect image.Rectangle) *image.Gray {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return image.NewGray(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.Gray)
}

func (p *GrayPool) Put(img *image.Gray) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
