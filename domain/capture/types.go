package capture

import (
	"errors"
	"image"
)

// ErrNotReady is returned by Session.TryFrame when the backend has no new
// frame yet. It is the only retryable capture error; everything else aborts
// the run.
var ErrNotReady = errors.New("capture: frame not ready")

// ErrNoDisplays is returned when the platform reports zero active displays.
var ErrNoDisplays = errors.New("capture: no active displays")

// PixelFormat identifies the channel order of a RawFrame.
type PixelFormat int

const (
	// FormatBGRA is the native order of GDI/DXGI style backends.
	FormatBGRA PixelFormat = iota
	// FormatRGBA is produced by library backends that pre-swizzle.
	FormatRGBA
)

// Display is one enumerated output with its geometry in global
// virtual-desktop coordinates. Immutable once enumerated.
type Display struct {
	Index  int
	Bounds image.Rectangle
}

// RawFrame is one display's pixel payload for one instant. Stride is the
// byte length of a row and may exceed Width*4; the trailing padding bytes
// must never reach converted output. Alpha content is undefined.
type RawFrame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat
}

// Session is a long-lived capture handle for one display. TryFrame either
// yields a RawFrame, ErrNotReady, or a fatal error.
type Session interface {
	Display() Display
	TryFrame() (*RawFrame, error)
	Close() error
}

// Backend enumerates displays and opens capture sessions for them.
type Backend interface {
	Name() string
	Displays() ([]Display, error)
	Open(d Display) (Session, error)
}
