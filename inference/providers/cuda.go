package providers

import (
	"fmt"
	"strconv"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	// CUDAProviderBackend uses NVIDIA CUDA for inference optimization.
	CUDAProviderBackend ProviderBackend = "cuda"
)

// cudaOptions maps the config onto CUDA provider options.
// See:
// https://onnxruntime.ai/docs/execution-providers/CUDA-ExecutionProvider.html#configuration-options
func cudaOptions(config Config) map[string]string {
	return map[string]string{
		"device_id":                 strconv.Itoa(config.DeviceID),
		"do_copy_in_default_stream": "1",
	}
}

func appendCUDA(options *ort.SessionOptions, config Config) error {
	opts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return fmt.Errorf("error creating CUDA provider options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.Update(cudaOptions(config)); err != nil {
		return fmt.Errorf("error updating CUDA provider options: %w", err)
	}
	if err := options.AppendExecutionProviderCUDA(opts); err != nil {
		return fmt.Errorf("error enabling CUDA: %w", err)
	}
	return nil
}
