package scrfd

import (
	"image"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-facedet/models/model"
	"github.com/nvr-ai/go-facedet/models/model/preprocess"
	"github.com/nvr-ai/go-facedet/models/postprocess"
)

// Options is the options for the SCRFD model.
type Options struct {
	Path      string  `json:"path" yaml:"path"`
	InputSide int     `json:"input_side" yaml:"input_side"`
	Mean      float32 `json:"mean" yaml:"mean"`
	Std       float32 `json:"std" yaml:"std"`
}

// SCRFD is the instance of the SCRFD face detector.
type SCRFD struct {
	options      Options
	preprocessor *preprocess.Preprocessor
}

// NewModel creates a new SCRFD model.
//
// Zero values in args fall back to the det_10g defaults: a 640 pixel canvas,
// mean 127.5 and std 128.
//
// Arguments:
//   - args: The arguments for creating a new model.
//
// Returns:
//   - *SCRFD: The model.
//   - error: An error if the canvas side is not a multiple of every stride.
func NewModel(args model.NewModelArgs) (*SCRFD, error) {
	config := preprocess.GetSCRFDConfig()
	options := Options{
		Path:      args.Path,
		InputSide: args.InputSide,
		Mean:      args.Mean,
		Std:       args.Std,
	}
	if options.InputSide == 0 {
		options.InputSide = InputSide
	}
	if options.Mean == 0 {
		options.Mean = config.MeanValues[0]
	}
	if options.Std == 0 {
		options.Std = config.StdValues[0]
	}

	for _, stride := range Strides {
		if _, err := NewGrid(options.InputSide, stride); err != nil {
			return nil, errors.Wrap(err, "invalid input side")
		}
	}

	config.InputWidth = options.InputSide
	config.InputHeight = options.InputSide
	config.MeanValues = [3]float32{options.Mean, options.Mean, options.Mean}
	config.StdValues = [3]float32{options.Std, options.Std, options.Std}

	return &SCRFD{
		options:      options,
		preprocessor: preprocess.NewPreprocessor(config),
	}, nil
}

// Options returns the description of the loaded model.
func (m *SCRFD) Options() model.BaseModel {
	return model.BaseModel{
		Name:      model.ModelNameSCRFD,
		Path:      m.options.Path,
		InputSide: m.options.InputSide,
	}
}

// PreProcess resizes img to the square canvas and normalizes it.
func (m *SCRFD) PreProcess(img image.Image) (*preprocess.PreprocessingResult, error) {
	return m.preprocessor.Preprocess(img)
}

// PostProcess decodes the six raw output tensors into detections.
//
// Arguments:
//   - outputs: Scores for strides 8, 16, 32 followed by boxes for the same strides.
//   - threshold: Anchors must score strictly above it.
//
// Returns:
//   - []postprocess.Detection: Detections in stride, cell, anchor order.
//   - error: A malformed tensor or layout error.
func (m *SCRFD) PostProcess(outputs [][]float32, threshold float32) ([]postprocess.Detection, error) {
	grouped, err := NewOutputs(outputs)
	if err != nil {
		return nil, err
	}
	return Decoder{InputSide: m.options.InputSide, Threshold: threshold}.DecodeAll(grouped)
}
