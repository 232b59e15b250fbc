// Package yolo - Single-shot YOLO detection models with the (4 + C)
// per-anchor output layout (v8/v9 family exports).
package yolo

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

const (
	// DefaultConfidenceThreshold is the decode prefilter applied when the
	// caller leaves the threshold zero.
	DefaultConfidenceThreshold = 0.4
	// DefaultScoreThreshold is the suppression score gate.
	DefaultScoreThreshold = 0.1
	// DefaultIoUThreshold is the suppression overlap threshold.
	DefaultIoUThreshold = 0.4
)

// Model is a YOLO detection model instance. It is immutable after
// construction: concurrent PostProcess calls over independent outputs need
// no coordination.
type Model struct {
	options model.Options
}

// NewModel creates a new YOLO model.
//
// The class table is validated against the output layout's class count
// here, before any detection call, so a mismatched table fails at
// initialization with classes.ErrClassCountMismatch.
//
// Arguments:
//   - args: The arguments for creating a new model. Zero thresholds take
//     the package defaults.
//
// Returns:
//   - *Model: The model.
//   - error: An error if the arguments are incomplete or inconsistent.
func NewModel(args model.NewModelArgs) (*Model, error) {
	if args.Input.Width <= 0 || args.Input.Height <= 0 {
		return nil, errors.Errorf("NewModel requires a positive input size, got %dx%d",
			args.Input.Width, args.Input.Height)
	}
	if args.NumAnchors <= 0 || args.NumClasses <= 0 {
		return nil, errors.Errorf("NewModel requires a positive output layout, got %d anchors, %d classes",
			args.NumAnchors, args.NumClasses)
	}
	if args.ClassTable == nil {
		return nil, errors.New("NewModel requires a class table")
	}
	if err := args.ClassTable.Validate(args.NumClasses); err != nil {
		return nil, err
	}

	options := model.Options{
		Name:   args.Name,
		Family: model.ModelFamilyYOLO,
		Path:   args.Path,
		Input:  args.Input,
		Layout: postprocess.Layout{
			NumAnchors:   args.NumAnchors,
			NumClasses:   args.NumClasses,
			ChannelMajor: args.ChannelMajor,
		},
		Classes:             args.ClassTable,
		ConfidenceThreshold: args.ConfidenceThreshold,
		ScoreThreshold:      args.ScoreThreshold,
		IoUThreshold:        args.IoUThreshold,
	}
	if options.ConfidenceThreshold == 0 {
		options.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if options.ScoreThreshold == 0 {
		options.ScoreThreshold = DefaultScoreThreshold
	}
	if options.IoUThreshold == 0 {
		options.IoUThreshold = DefaultIoUThreshold
	}

	return &Model{options: options}, nil
}

// Options returns the resolved model configuration.
func (m *Model) Options() model.Options {
	return m.options
}

// PostProcess turns one raw output tensor into the final detection list
// for an image of the given original size.
//
// Arguments:
//   - output: The raw output of the model, caller-owned and only read.
//   - imageSize: The original image dimensions for this call.
//
// Returns:
//   - []postprocess.Detection: Ordered by descending confidence.
//   - error: A postprocess error; never partial output.
func (m *Model) PostProcess(output []float32, imageSize images.Size) ([]postprocess.Detection, error) {
	return postprocess.Detect(
		output,
		m.options.Layout,
		m.options.Input,
		imageSize,
		m.options.Classes,
		m.options.ConfidenceThreshold,
		m.options.ScoreThreshold,
		m.options.IoUThreshold,
	)
}
