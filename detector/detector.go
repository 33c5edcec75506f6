// Package detector - Face detection pipeline from image to annotated output.
package detector

import (
	"context"
	"image"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-facedet/images"
	"github.com/nvr-ai/go-facedet/inference"
	"github.com/nvr-ai/go-facedet/models/model"
	"github.com/nvr-ai/go-facedet/models/postprocess"
)

// Detector runs one model through one inference engine.
type Detector struct {
	model     model.Model
	engine    inference.Engine
	threshold float32
}

// Result is the outcome of one detection call.
type Result struct {
	// Detections are in model canvas coordinates, in decode order.
	Detections []postprocess.Detection
	// Canvas is the resized image the network saw. Detections are drawn on it.
	Canvas *image.RGBA
	// OriginalWidth and OriginalHeight are the dimensions of the source image.
	OriginalWidth, OriginalHeight int
	// Timings breaks down where the call spent its time.
	Timings Timings
}

// Timings holds the duration of each pipeline stage.
type Timings struct {
	Preprocess  time.Duration
	Inference   time.Duration
	PostProcess time.Duration
}

// Total returns the sum of all stages.
func (t Timings) Total() time.Duration {
	return t.Preprocess + t.Inference + t.PostProcess
}

// New creates a detector.
//
// Arguments:
//   - m: The model that prepares input and decodes output.
//   - engine: The engine that runs the network.
//   - threshold: Detections must score strictly above it.
//
// Returns:
//   - *Detector: The detector.
//   - error: An error if an argument is missing or the threshold is NaN.
func New(m model.Model, engine inference.Engine, threshold float32) (*Detector, error) {
	if m == nil {
		return nil, errors.New("model is required")
	}
	if engine == nil {
		return nil, errors.New("inference engine is required")
	}
	if math32.IsNaN(threshold) {
		return nil, errors.New("threshold is NaN")
	}
	return &Detector{model: m, engine: engine, threshold: threshold}, nil
}

// Threshold returns the confidence threshold.
func (d *Detector) Threshold() float32 {
	return d.threshold
}

// Detect preprocesses img, runs the network and decodes its outputs.
//
// Arguments:
//   - ctx: Passed to the engine.
//   - img: The source image.
//
// Returns:
//   - *Result: The detections and the canvas they refer to.
//   - error: A preprocessing, inference or decoding error.
func (d *Detector) Detect(ctx context.Context, img image.Image) (*Result, error) {
	var timings Timings

	start := time.Now()
	input, err := d.model.PreProcess(img)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing failed")
	}
	timings.Preprocess = time.Since(start)

	start = time.Now()
	outputs, err := d.engine.Predict(ctx, input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "inference failed")
	}
	timings.Inference = time.Since(start)

	start = time.Now()
	detections, err := d.model.PostProcess(outputs, d.threshold)
	if err != nil {
		return nil, errors.Wrap(err, "decoding failed")
	}
	timings.PostProcess = time.Since(start)

	return &Result{
		Detections:     detections,
		Canvas:         input.Canvas,
		OriginalWidth:  input.OriginalWidth,
		OriginalHeight: input.OriginalHeight,
		Timings:        timings,
	}, nil
}

// Close releases the inference engine.
func (d *Detector) Close() error {
	return d.engine.Close()
}

// Annotate draws every detection onto canvas in place.
func Annotate(canvas *image.RGBA, detections []postprocess.Detection) {
	for _, det := range detections {
		images.DrawBox(canvas, det.Box)
	}
}
