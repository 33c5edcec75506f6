package scrfd

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-facedet/models/postprocess"
)

// InputSide is the canvas side, in pixels, the stock det_10g model expects.
const InputSide = 640

// Decoder turns raw score and box tensors into detections.
//
// A Decoder is a plain value with no internal state. It never alters its
// inputs, so the same tensors always decode to the same detections.
type Decoder struct {
	// InputSide is the side of the square canvas the network was fed.
	InputSide int
	// Threshold is the exclusive lower bound on anchor confidence.
	Threshold float32
}

// NewDecoder returns a Decoder for the stock 640x640 canvas.
func NewDecoder(threshold float32) Decoder {
	return Decoder{InputSide: InputSide, Threshold: threshold}
}

// ScaleOutput holds the two raw tensors of one stride.
type ScaleOutput struct {
	// Scores holds one confidence per (cell, anchor).
	Scores []float32
	// BBoxes holds four edge distances per (cell, anchor), in stride units.
	BBoxes []float32
}

// Outputs maps each stride to its raw tensors.
type Outputs map[Stride]ScaleOutput

// NewOutputs groups the network outputs by stride.
//
// The tensors must be in the network's positional order: the three score
// tensors for strides 8, 16 and 32, then the three box tensors in the same
// stride order. Extra trailing tensors are ignored.
//
// Arguments:
//   - tensors: The flattened output tensors.
//
// Returns:
//   - Outputs: The tensors keyed by stride.
//   - error: postprocess.ErrMalformedTensor if a tensor is missing or nil.
func NewOutputs(tensors [][]float32) (Outputs, error) {
	n := len(Strides)
	if len(tensors) < 2*n {
		return nil, errors.Wrapf(
			postprocess.ErrMalformedTensor,
			"expected %d output tensors, got %d", 2*n, len(tensors),
		)
	}

	outputs := make(Outputs, n)
	for i, stride := range Strides {
		scores, bboxes := tensors[i], tensors[n+i]
		if scores == nil || bboxes == nil {
			return nil, errors.Wrapf(postprocess.ErrMalformedTensor, "missing tensor for stride %d", stride)
		}
		outputs[stride] = ScaleOutput{Scores: scores, BBoxes: bboxes}
	}
	return outputs, nil
}

// ProcessScale decodes every anchor of one stride whose confidence is
// strictly greater than the threshold.
//
// Detections are emitted in cell-major, anchor-minor order. The reference
// point of a cell is its top-left corner, and distances are multiplied by the
// stride before decoding. The layout is checked before any anchor is read, so
// a failed call produces no detections.
//
// Arguments:
//   - stride: The stride the tensors belong to.
//   - scores: One confidence per (cell, anchor).
//   - bboxes: Four distances per (cell, anchor).
//
// Returns:
//   - []postprocess.Detection: The qualifying detections.
//   - error: ErrInvalidGrid, *LayoutMismatchError, or postprocess.ErrMalformedTensor.
func (d Decoder) ProcessScale(stride Stride, scores, bboxes []float32) ([]postprocess.Detection, error) {
	grid, err := NewGrid(d.InputSide, stride)
	if err != nil {
		return nil, err
	}

	cells := grid.Cells()
	numAnchors := len(scores) / cells
	if expected := len(ScalesFor(stride)); numAnchors != expected {
		return nil, &LayoutMismatchError{Stride: stride, Expected: expected, Actual: numAnchors}
	}
	if want := 4 * cells * numAnchors; len(bboxes) < want {
		return nil, errors.Wrapf(
			postprocess.ErrMalformedTensor,
			"stride %d box tensor has %d values, need %d", stride, len(bboxes), want,
		)
	}

	scale := float32(stride)
	var detections []postprocess.Detection
	for cell := 0; cell < cells; cell++ {
		point := grid.Point(cell)
		for anchor := 0; anchor < numAnchors; anchor++ {
			k := FlatIndex(cell, anchor, numAnchors)
			confidence := scores[k]
			if !(confidence > d.Threshold) {
				continue
			}

			delta := bboxes[4*k : 4*k+4]
			box := DecodeBox(point, [4]float32{
				delta[0] * scale,
				delta[1] * scale,
				delta[2] * scale,
				delta[3] * scale,
			})
			detections = append(detections, postprocess.Detection{Confidence: confidence, Box: box})
		}
	}
	return detections, nil
}

// DecodeAll decodes every stride in Strides order and concatenates the results.
//
// No global sort or suppression is applied. The first failing stride aborts
// the call and later strides are not decoded.
//
// Arguments:
//   - outputs: The raw tensors keyed by stride.
//
// Returns:
//   - []postprocess.Detection: Stride-8 detections first, then 16, then 32.
//   - error: The first decoding error, if any.
func (d Decoder) DecodeAll(outputs Outputs) ([]postprocess.Detection, error) {
	var detections []postprocess.Detection
	for _, stride := range Strides {
		out, ok := outputs[stride]
		if !ok {
			return nil, errors.Wrapf(postprocess.ErrMalformedTensor, "no outputs for stride %d", stride)
		}

		found, err := d.ProcessScale(stride, out.Scores, out.BBoxes)
		if err != nil {
			return nil, err
		}
		detections = append(detections, found...)
	}
	return detections, nil
}
