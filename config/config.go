// Package config - Runtime configuration for the face detector.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-facedet/inference/providers"
)

// FailurePolicy decides what a batch run does when one image fails.
type FailurePolicy string

const (
	// FailurePolicyAbort stops the run at the first failing image.
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicySkip logs the failure and continues with the next image.
	FailurePolicySkip FailurePolicy = "skip"
)

// Config is the complete runtime configuration. It is a plain value: copy it
// and pass it explicitly.
type Config struct {
	// ModelPath is the ONNX model file.
	ModelPath string `json:"model_path" yaml:"model_path"`
	// LibraryPath is the ONNX Runtime shared library. Empty selects the platform default.
	LibraryPath string `json:"library_path" yaml:"library_path"`
	// InputShape is the model input shape [1, 3, side, side].
	InputShape []int64 `json:"input_shape" yaml:"input_shape"`
	// InputMean is subtracted from every channel value.
	InputMean float32 `json:"input_mean" yaml:"input_mean"`
	// InputStd divides every channel value after the mean is subtracted.
	InputStd float32 `json:"input_std" yaml:"input_std"`
	// ConfidenceThreshold is the exclusive lower bound on detection confidence.
	ConfidenceThreshold float32 `json:"confidence_threshold" yaml:"confidence_threshold"`
	// IntraThreads bounds the threads used inside a node. Zero lets the runtime decide.
	IntraThreads int `json:"intra_threads" yaml:"intra_threads"`
	// Provider selects the execution provider.
	Provider providers.Config `json:"provider" yaml:"provider"`
	// OnError is the batch failure policy.
	OnError FailurePolicy `json:"on_error" yaml:"on_error"`
	// InputName overrides the model input name. Empty discovers it from the model.
	InputName string `json:"input_name" yaml:"input_name"`
	// OutputNames overrides the model outputs. Empty uses every output in model order.
	OutputNames []string `json:"output_names" yaml:"output_names"`
}

// Default returns the configuration of the stock det_10g detector.
//
// Returns:
//   - Config: det_10g.onnx, 640x640 input, (px - 127.5) / 128, threshold 0.5, 4 threads.
func Default() Config {
	return Config{
		ModelPath:           "det_10g.onnx",
		InputShape:          []int64{1, 3, 640, 640},
		InputMean:           127.5,
		InputStd:            128.0,
		ConfidenceThreshold: 0.5,
		IntraThreads:        4,
		Provider:            providers.DefaultConfig(),
		OnError:             FailurePolicyAbort,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default value and unknown keys are rejected. An empty path returns
// the defaults. The result is not validated: callers apply their overrides
// and then call Validate.
//
// Arguments:
//   - path: The YAML file path.
//
// Returns:
//   - Config: The merged configuration.
//   - error: An error if the file cannot be read or parsed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// InputSide returns the side of the square input canvas.
func (c Config) InputSide() int {
	if len(c.InputShape) != 4 {
		return 0
	}
	return int(c.InputShape[3])
}

// Validate checks that the configuration can drive a detection run.
//
// Returns:
//   - error: The first invalid setting.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("model_path is required")
	}
	if len(c.InputShape) != 4 {
		return errors.Errorf("input_shape must have 4 dimensions, got %v", c.InputShape)
	}
	if c.InputShape[0] != 1 || c.InputShape[1] != 3 {
		return errors.Errorf("input_shape must be [1, 3, side, side], got %v", c.InputShape)
	}
	if h, w := c.InputShape[2], c.InputShape[3]; h != w || w <= 0 || w%32 != 0 {
		return errors.Errorf("input_shape must be square with a side divisible by 32, got %v", c.InputShape)
	}
	if math32.IsNaN(c.ConfidenceThreshold) || c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.Errorf("confidence_threshold must be in [0, 1], got %v", c.ConfidenceThreshold)
	}
	if c.InputStd == 0 || math32.IsNaN(c.InputStd) {
		return errors.Errorf("input_std must be non-zero, got %v", c.InputStd)
	}
	if c.IntraThreads < 0 {
		return errors.Errorf("intra_threads must not be negative, got %d", c.IntraThreads)
	}
	if _, err := providers.ParseBackend(string(c.Provider.Backend)); err != nil {
		return err
	}
	switch c.OnError {
	case FailurePolicyAbort, FailurePolicySkip:
	default:
		return errors.Errorf("on_error must be %q or %q, got %q", FailurePolicyAbort, FailurePolicySkip, c.OnError)
	}
	return nil
}
