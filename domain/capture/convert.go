package capture

import (
	"fmt"
	"image"
)

// ToRGBA converts a raw backend frame into a canonical RGBA image with
// alpha forced to opaque. Rows are addressed as Stride*y so stride padding
// is skipped, never copied. The returned image comes from the frame pool;
// callers done with it should hand it to RecycleFrame.
func ToRGBA(f *RawFrame) (*image.RGBA, error) {
	if f == nil {
		return nil, fmt.Errorf("capture: nil raw frame")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid frame size w=%d h=%d", f.Width, f.Height)
	}
	if f.Stride < f.Width*4 {
		return nil, fmt.Errorf("capture: stride %d below row size %d", f.Stride, f.Width*4)
	}
	if len(f.Pix) < f.Stride*(f.Height-1)+f.Width*4 {
		return nil, fmt.Errorf("capture: short pixel buffer len=%d stride=%d h=%d", len(f.Pix), f.Stride, f.Height)
	}

	img := acquireFrame(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := f.Pix[f.Stride*y:]
		dst := img.Pix[img.Stride*y:]
		for x := 0; x < f.Width; x++ {
			si := 4 * x
			di := 4 * x
			switch f.Format {
			case FormatBGRA:
				dst[di+0] = src[si+2]
				dst[di+1] = src[si+1]
				dst[di+2] = src[si+0]
			default: // FormatRGBA
				dst[di+0] = src[si+0]
				dst[di+1] = src[si+1]
				dst[di+2] = src[si+2]
			}
			dst[di+3] = 0xFF
		}
	}
	return img, nil
}

// IsZero reports whether every byte of the frame's visible rows is zero.
// Some backends hand back an all-black buffer right after session start;
// the initial acquisition discards those.
func (f *RawFrame) IsZero() bool {
	for y := 0; y < f.Height; y++ {
		row := f.Pix[f.Stride*y : f.Stride*y+f.Width*4]
		for _, b := range row {
			if b != 0 {
				return false
			}
		}
	}
	return true
}
