package grab

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/soocke/screengrab-go/domain/capture"
)

// Assembler stitches per-display sub-images onto a shared canvas. The
// canvas dimensions are fixed at construction from the initial enumeration
// and never change for the run, even though content is refreshed frame to
// frame. Display regions are assumed non-overlapping, as reported by the
// OS; overlap is not defended against.
type Assembler struct {
	box      image.Rectangle
	displays []capture.Display
}

// NewAssembler freezes the bounding box for the given displays.
func NewAssembler(displays []capture.Display) (*Assembler, error) {
	box, err := capture.BoundingBox(displays)
	if err != nil {
		return nil, err
	}
	return &Assembler{box: box, displays: displays}, nil
}

// Bounds returns the frozen global bounding box.
func (a *Assembler) Bounds() image.Rectangle { return a.box }

// CanvasSize returns the frozen canvas dimensions.
func (a *Assembler) CanvasSize() (w, h int) { return a.box.Dx(), a.box.Dy() }

// Compose builds a new canvas from this cycle's sub-frames. Captured
// sub-images land at (left−minLeft, top−minTop); stale entries copy the
// same region out of prev. Region order is irrelevant since regions do not
// overlap. A stale entry with no previous canvas is a hard error.
func (a *Assembler) Compose(subs []SubFrame, prev *image.RGBA) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, a.box.Dx(), a.box.Dy()))
	for _, sub := range subs {
		dst := sub.Display.Bounds.Sub(a.box.Min)
		switch sub.Kind {
		case SubFrameCaptured:
			if sub.Image == nil {
				return nil, fmt.Errorf("grab: display %d captured sub-frame has no image", sub.Display.Index)
			}
			draw.Draw(canvas, dst, sub.Image, sub.Image.Bounds().Min, draw.Src)
		case SubFrameStale:
			if prev == nil {
				return nil, fmt.Errorf("grab: display %d stale with no previous canvas", sub.Display.Index)
			}
			draw.Draw(canvas, dst, prev, dst.Min, draw.Src)
		default:
			return nil, fmt.Errorf("grab: display %d has unknown sub-frame kind %d", sub.Display.Index, sub.Kind)
		}
	}
	return canvas, nil
}
