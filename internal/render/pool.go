package render

import (
	"image"
	"sync"
)

// FramePool recycles frame buffers of a fixed size between workers.
type FramePool struct {
	w, h int
	pool sync.Pool
}

func NewFramePool(w, h int) *FramePool {
	p := &FramePool{w: w, h: h}
	p.pool.New = func() any {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return p
}

func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns img to the pool. Buffers of another size are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Dx() != p.w || img.Rect.Dy() != p.h {
		return
	}
	p.pool.Put(img)
}
