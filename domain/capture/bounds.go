package capture

import "image"

// BoundingBox returns the minimal rectangle, in global coordinates,
// enclosing every display. The result is frozen for the lifetime of a
// capture run; re-enumeration mid-run never resizes an in-flight canvas.
// Returns ErrNoDisplays for an empty slice.
func BoundingBox(displays []Display) (image.Rectangle, error) {
	if len(displays) == 0 {
		return image.Rectangle{}, ErrNoDisplays
	}
	box := displays[0].Bounds
	for _, d := range displays[1:] {
		if d.Bounds.Min.X < box.Min.X {
			box.Min.X = d.Bounds.Min.X
		}
		if d.Bounds.Min.Y < box.Min.Y {
			box.Min.Y = d.Bounds.Min.Y
		}
		if d.Bounds.Max.X > box.Max.X {
			box.Max.X = d.Bounds.Max.X
		}
		if d.Bounds.Max.Y > box.Max.Y {
			box.Max.Y = d.Bounds.Max.Y
		}
	}
	return box, nil
}
