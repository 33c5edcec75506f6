package providers

import "runtime"

// GetSharedLibPath returns the conventional location of the ONNX Runtime
// shared library for the current platform, relative to the working directory.
// Unknown platforms get the library's bare file name so the system loader can
// search for it.
//
// Returns:
//   - string: The path to the shared library.
func GetSharedLibPath() string {
	return sharedLibPath(runtime.GOOS, runtime.GOARCH)
}

func sharedLibPath(goos, goarch string) string {
	switch goos {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		return "./third_party/libonnxruntime.dylib"
	case "linux":
		if goarch == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	default:
		return "onnxruntime.so"
	}
}
