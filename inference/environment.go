package inference

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-facedet/inference/providers"
)

var envMu sync.Mutex

// InitializeEnvironment loads the ONNX Runtime shared library and prepares
// its global state. It is safe to call more than once; only the first call
// with an uninitialized runtime has an effect.
//
// Arguments:
//   - libPath: The shared library path. Empty selects the platform default.
//
// Returns:
//   - error: An error if the library is missing or fails to initialize.
func InitializeEnvironment(libPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libPath == "" {
		libPath = providers.GetSharedLibPath()
	}
	// Bare file names are left to the system loader's search path.
	if filepath.Base(libPath) != libPath {
		if _, err := os.Stat(libPath); err != nil {
			return errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
		}
	}

	ort.SetSharedLibraryPath(libPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return errors.Wrap(err, "error initializing ORT environment")
	}
	return nil
}

// DestroyEnvironment releases the ONNX Runtime global state.
// All sessions must be closed first.
func DestroyEnvironment() error {
	envMu.Lock()
	defer envMu.Unlock()

	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
