package images

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isRed(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y) == Red
}

// TestDrawRectangle validates the outline geometry for a box fully inside the image.
//
// Arguments:
//   - t: Testing context for assertions and error reporting.
func TestDrawRectangle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawRectangle(img, image.Rectangle{Min: image.Point{X: 2, Y: 2}, Max: image.Point{X: 10, Y: 8}}, Red, 3)

	tests := []struct {
		name string
		x, y int
		red  bool
	}{
		{"top left corner", 2, 2, true},
		{"top edge", 6, 2, true},
		{"top edge inner row", 6, 4, true},
		{"interior", 6, 5, false},
		{"bottom edge below box", 6, 10, true},
		{"right edge outer column", 12, 5, true},
		{"outside right", 13, 5, false},
		{"outside above", 6, 1, false},
		{"left edge inner column", 4, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.red, isRed(img, tt.x, tt.y), "pixel (%d,%d)", tt.x, tt.y)
		})
	}
}

// TestDrawRectangleEdges validates that edges crossing the border are cut without panicking.
func TestDrawRectangleEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	require.NotPanics(t, func() {
		DrawRectangle(img, image.Rectangle{Min: image.Point{X: 15, Y: 15}, Max: image.Point{X: 19, Y: 19}}, Red, 3)
	})
	assert.True(t, isRed(img, 19, 19))
	assert.True(t, isRed(img, 17, 15))
	assert.False(t, isRed(img, 18, 18))
}

// TestDrawRectangleSwapped validates that swapped corners only draw the vertical edges.
func TestDrawRectangleSwapped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawRectangle(img, image.Rectangle{Min: image.Point{X: 10, Y: 2}, Max: image.Point{X: 5, Y: 8}}, Red, 3)

	assert.True(t, isRed(img, 6, 5))
	assert.True(t, isRed(img, 11, 5))
	assert.False(t, isRed(img, 8, 5))
	assert.False(t, isRed(img, 8, 2))
}

// TestDrawBox validates clamping of an out-of-canvas detection before drawing.
func TestDrawBox(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	DrawBox(img, Rect{X1: -10, Y1: -10, X2: 100, Y2: 100})

	assert.True(t, isRed(img, 0, 0))
	assert.True(t, isRed(img, 31, 0))
	assert.True(t, isRed(img, 0, 31))
	assert.True(t, isRed(img, 31, 31))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(16, 16))
}

// TestSaveOpen validates a PNG round trip through the file helpers.
func TestSaveOpen(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 7))
	DrawBox(img, Rect{X1: 1, Y1: 1, X2: 5, Y2: 5})

	path := filepath.Join(t.TempDir(), "boxes.png")
	require.NoError(t, Save(img, path))

	decoded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 12, decoded.Bounds().Dx())
	assert.Equal(t, 7, decoded.Bounds().Dy())

	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

// TestOpenMissing validates that a missing file reports the path.
func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
}
