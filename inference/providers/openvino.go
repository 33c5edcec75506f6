package providers

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	// OpenVINOProviderBackend uses Intel OpenVINO for inference optimization.
	OpenVINOProviderBackend ProviderBackend = "openvino"
)

// openVINOOptions maps the config onto OpenVINO provider options.
// See:
// https://onnxruntime.ai/docs/execution-providers/OpenVINO-ExecutionProvider.html#summary-of-options
func openVINOOptions(config Config) map[string]string {
	deviceType := config.DeviceType
	if deviceType == "" {
		deviceType = "CPU"
	}
	return map[string]string{"device_type": deviceType}
}

func appendOpenVINO(options *ort.SessionOptions, config Config) error {
	if err := options.AppendExecutionProviderOpenVINO(openVINOOptions(config)); err != nil {
		return fmt.Errorf("error enabling OpenVINO: %w", err)
	}
	return nil
}
