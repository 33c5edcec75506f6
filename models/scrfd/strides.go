// Package scrfd - Point-distance decoding for SCRFD-style face detectors.
//
// The network predicts, for every cell of three feature grids (strides 8, 16
// and 32 over a square input canvas), a fixed number of anchors. Each anchor
// carries one confidence score and four distances measured from the cell's
// top-left corner to the four box edges, in units of the stride.
package scrfd

// Stride is the downsampling factor of a feature grid relative to the input canvas.
type Stride int

// Strides lists the feature grids in the order their outputs are decoded.
var Strides = []Stride{8, 16, 32}

// ScalesFor returns the anchor scales the network was trained with for a stride.
//
// Only the length of the result matters: it is the number of anchors per cell
// the output tensors must carry. The values themselves never enter the box
// arithmetic. Unknown strides degrade to a single anchor.
//
// Arguments:
//   - stride: The feature grid stride.
//
// Returns:
//   - []float32: The anchor scales, one per anchor in a cell.
func ScalesFor(stride Stride) []float32 {
	switch stride {
	case 8:
		return []float32{2, 1}
	case 16:
		return []float32{8, 4}
	case 32:
		return []float32{32, 16}
	default:
		return []float32{1}
	}
}
