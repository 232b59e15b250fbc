// Package inference - Thin glue over the ONNX Runtime collaborator.
//
// The detection core never touches this package: it consumes the raw
// float32 output buffer a Session produces. Everything here is model I/O
// plumbing around the runtime's C library.
package inference

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

var initOnce sync.Once

// GetSharedLibPath returns the path to the onnxruntime shared library for
// the current platform. Override with the ONNXRUNTIME_LIB environment
// variable.
func GetSharedLibPath() string {
	if path := os.Getenv("ONNXRUNTIME_LIB"); path != "" {
		return path
	}
	switch runtime.GOOS {
	case "windows":
		return "third_party/onnxruntime.dll"
	case "darwin":
		return "third_party/libonnxruntime.dylib"
	default:
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.so"
		}
		return "third_party/onnxruntime.so"
	}
}

// initEnvironment initializes the ONNX Runtime environment once per
// process.
func initEnvironment() error {
	var err error
	initOnce.Do(func() {
		libPath := GetSharedLibPath()
		if _, statErr := os.Stat(libPath); os.IsNotExist(statErr) {
			err = errors.Errorf("ONNX Runtime library not found at %s", libPath)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if initErr := ort.InitializeEnvironment(); initErr != nil {
			err = errors.Wrap(initErr, "error initializing ORT environment")
		}
	})
	return err
}
