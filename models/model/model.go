// Package model - Definitions shared by all detection models.
package model

import (
	"image"

	"github.com/nvr-ai/go-facedet/models/model/preprocess"
	"github.com/nvr-ai/go-facedet/models/postprocess"
)

// Name is the unique identifier of a model.
type Name string

const (
	// ModelNameSCRFD is the name of the SCRFD face detector (det_10g).
	ModelNameSCRFD Name = "scrfd"
)

// BaseModel describes a loaded model.
type BaseModel struct {
	Name Name
	Path string
	// InputSide is the side of the square input canvas in pixels.
	InputSide int
}

// Model is a detection model: it prepares images for the network and turns
// the network's raw outputs into detections.
type Model interface {
	Options() BaseModel
	PreProcess(img image.Image) (*preprocess.PreprocessingResult, error)
	PostProcess(outputs [][]float32, threshold float32) ([]postprocess.Detection, error)
}

// NewModelArgs is the arguments for creating a new model.
type NewModelArgs struct {
	Name      Name    `json:"name" yaml:"name"`
	Path      string  `json:"path" yaml:"path"`
	InputSide int     `json:"input_side" yaml:"input_side"`
	Mean      float32 `json:"mean" yaml:"mean"`
	Std       float32 `json:"std" yaml:"std"`
}
