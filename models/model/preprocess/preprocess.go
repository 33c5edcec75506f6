// Package preprocess - Image to input tensor conversion for detection models.
package preprocess

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ModelConfig defines preprocessing configuration for a specific model.
type ModelConfig struct {
	// Name of the model for debugging purposes.
	Name string
	// InputWidth is the expected width of the model input.
	InputWidth int
	// InputHeight is the expected height of the model input.
	InputHeight int
	// MeanValues are subtracted from the R, G and B channels.
	MeanValues [3]float32
	// StdValues divide the R, G and B channels after the mean is subtracted.
	StdValues [3]float32
	// Filter is the interpolation used to resize the image to the input size.
	Filter resize.InterpolationFunction
}

// GetSCRFDConfig returns the preprocessing configuration of the det_10g face detector.
//
// Returns:
//   - *ModelConfig: 640x640 input, bicubic resize, (px - 127.5) / 128 normalization.
func GetSCRFDConfig() *ModelConfig {
	return &ModelConfig{
		Name:        "scrfd",
		InputWidth:  640,
		InputHeight: 640,
		MeanValues:  [3]float32{127.5, 127.5, 127.5},
		StdValues:   [3]float32{128, 128, 128},
		Filter:      resize.Bicubic,
	}
}

// PreprocessingResult contains the preprocessed image data and metadata.
type PreprocessingResult struct {
	// Data is the normalized float32 tensor in CHW order.
	Data []float32
	// Canvas is the resized, opaque RGB image the tensor was built from.
	Canvas *image.RGBA
	// OriginalWidth is the original image width before preprocessing.
	OriginalWidth int
	// OriginalHeight is the original image height before preprocessing.
	OriginalHeight int
	// Shape is the tensor shape [1, 3, H, W].
	Shape []int64
}

// Preprocessor converts images into model input tensors.
type Preprocessor struct {
	config *ModelConfig
}

// NewPreprocessor creates a new preprocessor with the given configuration.
//
// Arguments:
//   - config: The model-specific preprocessing configuration.
//
// Returns:
//   - *Preprocessor: A configured Preprocessor instance.
func NewPreprocessor(config *ModelConfig) *Preprocessor {
	return &Preprocessor{config: config}
}

// Config returns the preprocessing configuration.
func (p *Preprocessor) Config() ModelConfig {
	return *p.config
}

// Preprocess resizes img exactly to the input size, ignoring aspect ratio,
// and packs it into a normalized CHW tensor.
//
// Alpha is discarded: each pixel contributes its straight (non-premultiplied)
// RGB values.
//
// Arguments:
//   - img: The input image to preprocess.
//
// Returns:
//   - *PreprocessingResult: The tensor, the resized canvas and metadata.
//   - error: An error if the image is nil or empty, or the configuration is invalid.
func (p *Preprocessor) Preprocess(img image.Image) (*PreprocessingResult, error) {
	if err := p.validateInput(img); err != nil {
		return nil, errors.Wrap(err, "input validation failed")
	}

	bounds := img.Bounds()
	w, h := p.config.InputWidth, p.config.InputHeight
	resized := resize.Resize(uint(w), uint(h), img, p.config.Filter)

	canvas := toOpaqueRGBA(resized)
	data := p.imageToTensor(canvas)

	return &PreprocessingResult{
		Data:           data,
		Canvas:         canvas,
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		Shape:          []int64{1, 3, int64(h), int64(w)},
	}, nil
}

func (p *Preprocessor) validateInput(img image.Image) error {
	if p.config.InputWidth <= 0 || p.config.InputHeight <= 0 {
		return fmt.Errorf("invalid input size: %dx%d", p.config.InputWidth, p.config.InputHeight)
	}
	for c, std := range p.config.StdValues {
		if std == 0 {
			return fmt.Errorf("std value for channel %d is zero", c)
		}
	}
	if img == nil {
		return errors.New("image is nil")
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("invalid image dimensions: %dx%d", b.Dx(), b.Dy())
	}
	return nil
}

// toOpaqueRGBA copies img into a zero-origin RGBA image with alpha forced to 255.
func toOpaqueRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out
}

// imageToTensor lays the canvas out as three planes (R, G, B) of H x W values.
func (p *Preprocessor) imageToTensor(canvas *image.RGBA) []float32 {
	w, h := canvas.Rect.Dx(), canvas.Rect.Dy()
	plane := w * h
	data := make([]float32, 3*plane)
	mean, std := p.config.MeanValues, p.config.StdValues

	for y := 0; y < h; y++ {
		row := canvas.Pix[y*canvas.Stride:]
		for x := 0; x < w; x++ {
			px := row[4*x : 4*x+3]
			i := y*w + x
			for c := 0; c < 3; c++ {
				data[c*plane+i] = (float32(px[c]) - mean[c]) / std[c]
			}
		}
	}
	return data
}
