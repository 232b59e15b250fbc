// Package inference - Inference sessions.
package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// SessionConfig describes the model file and tensor geometry a session is
// created with.
type SessionConfig struct {
	// ModelPath is the location of the ONNX weights file.
	ModelPath string
	// InputName and OutputName are the model's graph tensor names. The
	// Ultralytics exports use "images" and "output0".
	InputName  string
	OutputName string
	// Input is the fixed pixel size the model consumes.
	Input images.Size
	// Layout is the output tensor geometry.
	Layout postprocess.Layout
	// IntraOpThreads and InterOpThreads bound runtime parallelism. Zero
	// uses the runtime defaults.
	IntraOpThreads int
	InterOpThreads int
}

// Session owns an ONNX Runtime session together with its input and output
// tensors. It is not safe for concurrent Run calls; callers wanting
// parallel inference create one Session per goroutine.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	config  SessionConfig
}

// NewSession loads the model and allocates the fixed input and output
// tensors.
//
// Arguments:
//   - config: Model location and tensor geometry.
//
// Returns:
//   - *Session: The ready session.
//   - error: An error if the runtime library, model file or tensor
//     creation fails.
func NewSession(config SessionConfig) (*Session, error) {
	if err := initEnvironment(); err != nil {
		return nil, err
	}
	if config.InputName == "" {
		config.InputName = "images"
	}
	if config.OutputName == "" {
		config.OutputName = "output0"
	}

	inputShape := ort.NewShape(1, 3, int64(config.Input.Height), int64(config.Input.Width))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, errors.Wrap(err, "error creating input tensor")
	}

	var outputShape ort.Shape
	if config.Layout.ChannelMajor {
		outputShape = ort.NewShape(1, int64(config.Layout.FieldsPerAnchor()), int64(config.Layout.NumAnchors))
	} else {
		outputShape = ort.NewShape(1, int64(config.Layout.NumAnchors), int64(config.Layout.FieldsPerAnchor()))
	}
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating ORT session options")
	}
	defer options.Destroy()

	if config.IntraOpThreads > 0 {
		options.SetIntraOpNumThreads(config.IntraOpThreads)
	}
	if config.InterOpThreads > 0 {
		options.SetInterOpNumThreads(config.InterOpThreads)
	}
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	session, err := ort.NewAdvancedSession(
		config.ModelPath,
		[]string{config.InputName},
		[]string{config.OutputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "error creating ORT session for %s", config.ModelPath)
	}

	return &Session{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
		config:  config,
	}, nil
}

// Input exposes the input tensor for PrepareInput to fill.
func (s *Session) Input() *ort.Tensor[float32] {
	return s.input
}

// Run executes the model over the currently prepared input and returns the
// raw output buffer. The buffer is owned by the session and valid until
// the next Run or Close; callers must not retain it.
func (s *Session) Run() ([]float32, error) {
	if s.session == nil {
		return nil, errors.New("session is closed")
	}
	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "failed to run inference")
	}
	return s.output.GetData(), nil
}

// Close releases the session and its tensors. Safe to call more than
// once.
func (s *Session) Close() {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}
