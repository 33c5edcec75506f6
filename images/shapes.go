// Package images - Image geometry, drawing and file utilities.
package images

import (
	"image"

	"github.com/chewxy/math32"
)

// Rect is a bounding box in pixel coordinates of the model input canvas.
//
// The corners are not guaranteed to be ordered or inside the canvas: decoded
// boxes keep whatever the network regressed.
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// Width returns X2 - X1. It is negative when the corners are swapped.
func (r Rect) Width() float32 {
	return r.X2 - r.X1
}

// Height returns Y2 - Y1. It is negative when the corners are swapped.
func (r Rect) Height() float32 {
	return r.Y2 - r.Y1
}

// Clamp converts the box to integer pixel corners inside a w x h image.
//
// Each coordinate is clamped to [0, w-1] (x) or [0, h-1] (y) and then
// truncated. NaN coordinates collapse to 0. The result is inclusive on both
// corners, so it is not a canonical image.Rectangle and must not be passed to
// image.Rectangle.Canon.
//
// Arguments:
//   - w: The image width in pixels.
//   - h: The image height in pixels.
//
// Returns:
//   - image.Rectangle: Min holds (x1, y1) and Max holds (x2, y2).
func (r Rect) Clamp(w, h int) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: clampCoord(r.X1, w), Y: clampCoord(r.Y1, h)},
		Max: image.Point{X: clampCoord(r.X2, w), Y: clampCoord(r.Y2, h)},
	}
}

func clampCoord(v float32, size int) int {
	if size <= 0 || math32.IsNaN(v) {
		return 0
	}
	return int(math32.Min(math32.Max(v, 0), float32(size-1)))
}
