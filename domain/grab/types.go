package grab

import (
	"image"
	"math"
	"time"

	"github.com/soocke/screengrab-go/domain/capture"
)

// SubFrameKind tags one display's contribution to a cycle.
type SubFrameKind int

const (
	// SubFrameCaptured carries a freshly converted image.
	SubFrameCaptured SubFrameKind = iota
	// SubFrameStale means acquisition starved this cycle; the assembler
	// reuses the matching region of the previous canvas.
	SubFrameStale
)

// SubFrame is one display's converted contribution to one assembly cycle.
// Image is nil exactly when Kind is SubFrameStale.
type SubFrame struct {
	Display capture.Display
	Kind    SubFrameKind
	Image   *image.RGBA
}

// FrameSequence is the terminal output of a capture run: at least one
// assembled canvas plus a parallel list of inter-frame delays. The first
// delay spans run start to completion of the first canvas.
type FrameSequence struct {
	RunID    string
	Origin   image.Point // top-left of the bounding box in global coordinates
	Canvases []*image.RGBA
	Delays   []uint16 // milliseconds
}

// Len returns the number of frames in the sequence.
func (s *FrameSequence) Len() int { return len(s.Canvases) }

func (s *FrameSequence) append(canvas *image.RGBA, delay time.Duration) {
	s.Canvases = append(s.Canvases, canvas)
	s.Delays = append(s.Delays, clampDelayMillis(delay))
}

func (s *FrameSequence) last() *image.RGBA {
	if len(s.Canvases) == 0 {
		return nil
	}
	return s.Canvases[len(s.Canvases)-1]
}

// clampDelayMillis converts a wall-clock delay to the sequence's uint16
// millisecond representation. Out-of-range values clamp, never wrap.
func clampDelayMillis(d time.Duration) uint16 {
	ms := d.Milliseconds()
	if ms < 0 {
		return 0
	}
	if ms > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(ms)
}
