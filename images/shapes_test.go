package images

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// TestRectClamp validates clamping of decoded boxes to the canvas.
//
// Arguments:
//   - t: Testing context for assertions and error reporting.
func TestRectClamp(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		w, h     int
		expected image.Rectangle
	}{
		{
			name:     "inside",
			rect:     Rect{X1: 10.7, Y1: 20.2, X2: 100.9, Y2: 200.5},
			w:        640,
			h:        640,
			expected: image.Rect(10, 20, 100, 200),
		},
		{
			name:     "negative and overflowing",
			rect:     Rect{X1: -5, Y1: -128, X2: 700, Y2: 639.9},
			w:        640,
			h:        640,
			expected: image.Rectangle{Min: image.Point{}, Max: image.Point{X: 639, Y: 639}},
		},
		{
			name:     "non-square image",
			rect:     Rect{X1: 50, Y1: 50, X2: 500, Y2: 500},
			w:        640,
			h:        100,
			expected: image.Rectangle{Min: image.Point{X: 50, Y: 50}, Max: image.Point{X: 500, Y: 99}},
		},
		{
			name:     "nan collapses to zero",
			rect:     Rect{X1: math32.NaN(), Y1: 4, X2: 8, Y2: math32.NaN()},
			w:        16,
			h:        16,
			expected: image.Rectangle{Min: image.Point{X: 0, Y: 4}, Max: image.Point{X: 8, Y: 0}},
		},
		{
			name:     "empty image",
			rect:     Rect{X1: 1, Y1: 1, X2: 2, Y2: 2},
			w:        0,
			h:        0,
			expected: image.Rectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rect.Clamp(tt.w, tt.h))
		})
	}
}

// TestRectSize validates width and height, including swapped corners.
func TestRectSize(t *testing.T) {
	r := Rect{X1: -1, Y1: -2, X2: 3, Y2: 4}
	assert.Equal(t, float32(4), r.Width())
	assert.Equal(t, float32(6), r.Height())

	swapped := Rect{X1: 10, Y1: 10, X2: 0, Y2: 5}
	assert.Equal(t, float32(-10), swapped.Width())
	assert.Equal(t, float32(-5), swapped.Height())
}
