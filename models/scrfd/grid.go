package scrfd

import "github.com/pkg/errors"

// Grid is the square feature grid of one stride over the input canvas.
type Grid struct {
	// Stride is the pixel size of a cell.
	Stride Stride
	// Size is the number of cells along each side.
	Size int
}

// NewGrid returns the grid of stride over a side x side canvas.
//
// Arguments:
//   - side: The input canvas side in pixels.
//   - stride: The feature grid stride.
//
// Returns:
//   - Grid: The grid.
//   - error: ErrInvalidGrid if side is not a positive multiple of stride.
func NewGrid(side int, stride Stride) (Grid, error) {
	if stride <= 0 || side <= 0 || side%int(stride) != 0 {
		return Grid{}, errors.Wrapf(ErrInvalidGrid, "side %d, stride %d", side, stride)
	}
	return Grid{Stride: stride, Size: side / int(stride)}, nil
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Cell returns the row and column of cell i in row-major order.
func (g Grid) Cell(i int) (row, col int) {
	return i / g.Size, i % g.Size
}

// Point returns the top-left corner of cell i in canvas pixels.
func (g Grid) Point(i int) [2]float32 {
	row, col := g.Cell(i)
	s := int(g.Stride)
	return [2]float32{float32(col * s), float32(row * s)}
}

// FlatIndex returns the position of (cell, anchor) in a score tensor.
// The matching deltas start at 4 * FlatIndex in the box tensor.
func FlatIndex(cell, anchor, numAnchors int) int {
	return cell*numAnchors + anchor
}
