// Package providers - Execution provider selection for ONNX Runtime sessions.
package providers

import (
	"fmt"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// ProviderBackend represents different ONNX Runtime execution providers.
type ProviderBackend string

const (
	// CPUProviderBackend runs inference on the default CPU provider.
	CPUProviderBackend ProviderBackend = "cpu"
)

// Backends lists every supported backend.
var Backends = []ProviderBackend{
	CPUProviderBackend,
	CUDAProviderBackend,
	CoreMLProviderBackend,
	OpenVINOProviderBackend,
}

// Config selects and tunes an execution provider.
type Config struct {
	// Backend is the execution provider to append to the session.
	Backend ProviderBackend `json:"backend" yaml:"backend"`
	// DeviceID selects the GPU for CUDA.
	DeviceID int `json:"device_id" yaml:"device_id"`
	// DeviceType selects the OpenVINO device, e.g. "CPU" or "GPU".
	DeviceType string `json:"device_type" yaml:"device_type"`
}

// DefaultConfig returns the CPU provider configuration.
func DefaultConfig() Config {
	return Config{Backend: CPUProviderBackend, DeviceType: "CPU"}
}

// ParseBackend returns the backend named by s, ignoring case.
// An empty name selects the CPU backend.
//
// Arguments:
//   - s: The backend name.
//
// Returns:
//   - ProviderBackend: The backend.
//   - error: An error if the name is not a supported backend.
func ParseBackend(s string) (ProviderBackend, error) {
	name := ProviderBackend(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return CPUProviderBackend, nil
	}
	for _, b := range Backends {
		if b == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unsupported execution provider %q", s)
}

// Apply appends the configured execution provider to the session options.
// The CPU backend needs nothing appended.
//
// Arguments:
//   - options: The session options to modify.
//   - config: The provider selection.
//
// Returns:
//   - error: An error if the provider is unknown or cannot be enabled.
func Apply(options *ort.SessionOptions, config Config) error {
	backend, err := ParseBackend(string(config.Backend))
	if err != nil {
		return err
	}

	switch backend {
	case CPUProviderBackend:
		return nil
	case CUDAProviderBackend:
		return appendCUDA(options, config)
	case CoreMLProviderBackend:
		return appendCoreML(options)
	case OpenVINOProviderBackend:
		return appendOpenVINO(options, config)
	default:
		return fmt.Errorf("unsupported execution provider %q", backend)
	}
}
