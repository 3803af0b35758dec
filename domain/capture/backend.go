package capture

import (
	"fmt"
	"log/slog"

	"github.com/kbinani/screenshot"
)

// NewBackend resolves a configured backend name. "auto" enumerates every
// active display; "primary" sees only the main screen; further names are
// platform specific ("gdi" on windows).
func NewBackend(name string, logger *slog.Logger) (Backend, error) {
	switch name {
	case "", "auto":
		return &autoBackend{logger: logger}, nil
	case "primary":
		return &primaryBackend{logger: logger}, nil
	default:
		return platformBackend(name, logger)
	}
}

// autoBackend is the default cross-platform backend built on
// kbinani/screenshot. Its captures are synchronous, so sessions never
// report not-ready; the retry policies still apply to other backends and
// to test doubles.
type autoBackend struct {
	logger *slog.Logger
}

func (b *autoBackend) Name() string { return "auto" }

func (b *autoBackend) Displays() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplays
	}
	displays := make([]Display, n)
	for i := 0; i < n; i++ {
		displays[i] = Display{Index: i, Bounds: screenshot.GetDisplayBounds(i)}
	}
	return displays, nil
}

func (b *autoBackend) Open(d Display) (Session, error) {
	if d.Bounds.Empty() {
		return nil, fmt.Errorf("capture: display %d has empty bounds", d.Index)
	}
	return &autoSession{display: d}, nil
}

type autoSession struct {
	display Display
}

func (s *autoSession) Display() Display { return s.display }

func (s *autoSession) TryFrame() (*RawFrame, error) {
	img, err := screenshot.CaptureRect(s.display.Bounds)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", s.display.Bounds, err)
	}
	return &RawFrame{
		Pix:    img.Pix,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		Stride: img.Stride,
		Format: FormatRGBA,
	}, nil
}

func (s *autoSession) Close() error { return nil }
