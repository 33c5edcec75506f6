package scrfd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScalesFor validates the anchor scale table, including the fallback.
//
// Arguments:
//   - t: Testing context for assertions and error reporting.
func TestScalesFor(t *testing.T) {
	tests := []struct {
		stride   Stride
		expected []float32
	}{
		{8, []float32{2, 1}},
		{16, []float32{8, 4}},
		{32, []float32{32, 16}},
		{64, []float32{1}},
		{0, []float32{1}},
		{-8, []float32{1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScalesFor(tt.stride), "stride %d", tt.stride)
	}
}

// TestStridesOrder validates the fixed decode order.
func TestStridesOrder(t *testing.T) {
	assert.Equal(t, []Stride{8, 16, 32}, Strides)
}

// TestNewGrid validates grid sizes on the stock canvas and rejection of bad sides.
func TestNewGrid(t *testing.T) {
	for stride, size := range map[Stride]int{8: 80, 16: 40, 32: 20} {
		g, err := NewGrid(InputSide, stride)
		require.NoError(t, err)
		assert.Equal(t, size, g.Size)
		assert.Equal(t, size*size, g.Cells())
	}

	for _, tt := range []struct {
		side   int
		stride Stride
	}{
		{630, 32},
		{0, 8},
		{640, 0},
		{-640, 8},
	} {
		_, err := NewGrid(tt.side, tt.stride)
		assert.True(t, errors.Is(err, ErrInvalidGrid), "side %d stride %d", tt.side, tt.stride)
	}
}

// TestGridCell validates row-major cell coordinates and reference points.
func TestGridCell(t *testing.T) {
	g := Grid{Stride: 32, Size: 20}

	tests := []struct {
		cell     int
		row, col int
		point    [2]float32
	}{
		{0, 0, 0, [2]float32{0, 0}},
		{1, 0, 1, [2]float32{32, 0}},
		{19, 0, 19, [2]float32{608, 0}},
		{20, 1, 0, [2]float32{0, 32}},
		{21, 1, 1, [2]float32{32, 32}},
		{399, 19, 19, [2]float32{608, 608}},
	}

	for _, tt := range tests {
		row, col := g.Cell(tt.cell)
		assert.Equal(t, tt.row, row, "cell %d row", tt.cell)
		assert.Equal(t, tt.col, col, "cell %d col", tt.cell)
		assert.Equal(t, tt.point, g.Point(tt.cell), "cell %d point", tt.cell)
	}
}

// TestFlatIndex validates the cell-major, anchor-minor index.
func TestFlatIndex(t *testing.T) {
	assert.Equal(t, 0, FlatIndex(0, 0, 2))
	assert.Equal(t, 1, FlatIndex(0, 1, 2))
	assert.Equal(t, 2, FlatIndex(1, 0, 2))
	assert.Equal(t, 43, FlatIndex(21, 1, 2))
	assert.Equal(t, 7, FlatIndex(7, 0, 1))
}
