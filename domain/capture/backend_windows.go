//go:build windows

package capture

// Win32 GDI backend. Each session owns a memory DC plus a top-down 32-bit
// DIB sized to its display and BitBlt's the screen into it on every
// TryFrame, handing back the DIB bytes as raw BGRA. The swizzle to
// canonical RGBA happens in ToRGBA, not here.

import (
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"
)

const (
	srccopy      = 0x00CC0020
	captureblt   = 0x40000000
	dibRGBColors = 0
	biRgb        = 0
)

var (
	user32                 = syscall.NewLazyDLL("user32.dll")
	gdi32                  = syscall.NewLazyDLL("gdi32.dll")
	kernel32               = syscall.NewLazyDLL("kernel32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procGetLastError       = kernel32.NewProc("GetLastError")
)

// BITMAPINFO structures (Win32 layout).
type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte // one RGBQUAD placeholder (unused for 32-bit)
}

func platformBackend(name string, logger *slog.Logger) (Backend, error) {
	if name != "gdi" {
		return nil, fmt.Errorf("capture: unknown backend %q", name)
	}
	return &gdiBackend{logger: logger}, nil
}

// gdiBackend reuses the auto enumeration but opens DIB-backed sessions.
type gdiBackend struct {
	logger *slog.Logger
}

func (b *gdiBackend) Name() string { return "gdi" }

func (b *gdiBackend) Displays() ([]Display, error) {
	return (&autoBackend{logger: b.logger}).Displays()
}

func (b *gdiBackend) Open(d Display) (Session, error) {
	w, h := d.Bounds.Dx(), d.Bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("capture: display %d has empty bounds", d.Index)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("capture: GetDC failed winerr=%d", getLastError())
	}
	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		procReleaseDC.Call(0, screenDC)
		return nil, fmt.Errorf("capture: CreateCompatibleDC failed winerr=%d", getLastError())
	}

	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h) // top-down
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRgb
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bitsPtr unsafe.Pointer
	bmp, _, _ := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bitsPtr)), 0, 0)
	if bmp == 0 {
		procDeleteDC.Call(memDC)
		procReleaseDC.Call(0, screenDC)
		return nil, fmt.Errorf("capture: CreateDIBSection failed winerr=%d", getLastError())
	}
	prev, _, _ := procSelectObject.Call(memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) { // failure or GDI_ERROR
		procDeleteObject.Call(bmp)
		procDeleteDC.Call(memDC)
		procReleaseDC.Call(0, screenDC)
		return nil, fmt.Errorf("capture: SelectObject failed winerr=%d", getLastError())
	}

	return &gdiSession{display: d, screenDC: screenDC, memDC: memDC, bmp: bmp, bits: bitsPtr}, nil
}

// gdiSession holds the GDI resources for one display for the whole run.
type gdiSession struct {
	display  Display
	screenDC uintptr
	memDC    uintptr
	bmp      uintptr
	bits     unsafe.Pointer
	buf      []byte
}

func (s *gdiSession) Display() Display { return s.display }

func (s *gdiSession) TryFrame() (*RawFrame, error) {
	w, h := s.display.Bounds.Dx(), s.display.Bounds.Dy()
	ok, _, _ := procBitBlt.Call(s.memDC, 0, 0, uintptr(w), uintptr(h),
		s.screenDC, uintptr(s.display.Bounds.Min.X), uintptr(s.display.Bounds.Min.Y), srccopy|captureblt)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt display %d rect %v winerr=%d", s.display.Index, s.display.Bounds, getLastError())
	}
	pixLen := w * h * 4
	src := (*[1 << 30]byte)(s.bits)[:pixLen:pixLen]
	if cap(s.buf) < pixLen {
		s.buf = make([]byte, pixLen)
	}
	buf := s.buf[:pixLen]
	copy(buf, src)
	return &RawFrame{Pix: buf, Width: w, Height: h, Stride: w * 4, Format: FormatBGRA}, nil
}

func (s *gdiSession) Close() error {
	procDeleteObject.Call(s.bmp)
	procDeleteDC.Call(s.memDC)
	procReleaseDC.Call(0, s.screenDC)
	return nil
}

func getLastError() uint32 {
	v, _, _ := procGetLastError.Call()
	return uint32(v)
}
