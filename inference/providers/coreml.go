package providers

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	// CoreMLProviderBackend uses Apple CoreML for macOS/iOS acceleration.
	CoreMLProviderBackend ProviderBackend = "coreml"
)

func appendCoreML(options *ort.SessionOptions) error {
	if err := options.AppendExecutionProviderCoreML(0); err != nil {
		return fmt.Errorf("error enabling CoreML: %w", err)
	}
	return nil
}
