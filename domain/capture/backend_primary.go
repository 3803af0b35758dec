package capture

import (
	"fmt"
	"log/slog"

	"github.com/vova616/screenshot"
)

// primaryBackend captures only the main screen via vova616/screenshot.
// Useful on single-display setups and as a fallback when per-display
// enumeration misbehaves; the assembled canvas then equals the one
// display's frame.
type primaryBackend struct {
	logger *slog.Logger
}

func (b *primaryBackend) Name() string { return "primary" }

func (b *primaryBackend) Displays() ([]Display, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("screen rect: %w", err)
	}
	if r.Empty() {
		return nil, ErrNoDisplays
	}
	return []Display{{Index: 0, Bounds: r}}, nil
}

func (b *primaryBackend) Open(d Display) (Session, error) {
	if d.Bounds.Empty() {
		return nil, fmt.Errorf("capture: display %d has empty bounds", d.Index)
	}
	return &primarySession{display: d}, nil
}

type primarySession struct {
	display Display
}

func (s *primarySession) Display() Display { return s.display }

func (s *primarySession) TryFrame() (*RawFrame, error) {
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

func (s *primarySession) Close() error { return nil }
