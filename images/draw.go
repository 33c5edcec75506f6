package images

import (
	"image"
	"image/color"
)

const (
	// DefaultThickness is the outline width, in pixels, used for detections.
	DefaultThickness = 3
)

// Red is the outline color used for detections.
var Red = color.RGBA{R: 255, A: 255}

// DrawRectangle draws the outline of r onto dst.
//
// r is inclusive on both corners (see Rect.Clamp). Horizontal edges are drawn
// for x in [x1, x2] at rows y1+d and y2+d, vertical edges for y in [y1, y2] at
// columns x1+d and x2+d, with d in [0, thickness). Pixels that fall outside
// dst are skipped, so thick edges near the border are cut rather than shifted.
// A box with x1 > x2 draws no horizontal edges, and y1 > y2 draws no vertical
// edges.
//
// Arguments:
//   - dst: The image to draw on.
//   - r: The inclusive pixel corners of the box.
//   - c: The outline color.
//   - thickness: The outline width in pixels.
func DrawRectangle(dst *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	bounds := dst.Bounds()
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(bounds) {
			dst.SetRGBA(x, y, c)
		}
	}

	for d := 0; d < thickness; d++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			set(x, r.Min.Y+d)
			set(x, r.Max.Y+d)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			set(r.Min.X+d, y)
			set(r.Max.X+d, y)
		}
	}
}

// DrawBox clamps box to dst and draws it with the detection style.
func DrawBox(dst *image.RGBA, box Rect) {
	b := dst.Bounds()
	DrawRectangle(dst, box.Clamp(b.Dx(), b.Dy()).Add(b.Min), Red, DefaultThickness)
}
