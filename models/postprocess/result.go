// Package postprocess - Postprocessing types shared by detection models.
package postprocess

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-facedet/images"
)

// ErrMalformedTensor is returned when a raw output tensor is missing, empty,
// too short for its layout, or not a float32 tensor.
var ErrMalformedTensor = errors.New("malformed output tensor")

// Detection represents a single detected face.
type Detection struct {
	// Confidence is the raw score emitted by the network for this anchor.
	Confidence float32 `json:"confidence" yaml:"confidence"`
	// Box is the decoded bounding box in model input pixel coordinates.
	Box images.Rect `json:"box" yaml:"box"`
}
