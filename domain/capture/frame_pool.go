package capture

import (
	"image"
	"sync"
)

// Reusable buffer pool for converted per-display sub-images. Every animated
// cycle converts one RawFrame per display into a transient RGBA image that
// dies as soon as it has been composed onto the canvas; pooling those
// backing slices keeps a multi-display animated run from churning several
// screen-sized allocations per frame. Canvases appended to a FrameSequence
// are long-lived and never come from this pool.
//
// acquireFrame(rect) returns an *image.RGBA whose Pix capacity is at least
// rect area * 4. Callers hand finished sub-images to RecycleFrame; skipping
// the recycle degrades gracefully to plain allocation.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect. The returned Pix
// length exactly matches rect area * 4, and Stride is width*4.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// RecycleFrame returns a converted sub-image to the pool for reuse. The
// image must no longer be accessed by the caller afterwards.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}
