package yolo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-detect/classes"
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/model"
)

func newArgs() model.NewModelArgs {
	return model.NewModelArgs{
		Name:       model.ModelNameYOLOv9,
		Path:       "weights/yolov9-c.onnx",
		Input:      images.Size{Width: 640, Height: 640},
		NumAnchors: 8400,
		NumClasses: 3,
		ClassTable: classes.NewTable([]string{"person", "bicycle", "car"}),
	}
}

func TestNewModelDefaults(t *testing.T) {
	m, err := NewModel(newArgs())
	require.NoError(t, err)

	opts := m.Options()
	assert.Equal(t, model.ModelFamilyYOLO, opts.Family)
	assert.Equal(t, float32(DefaultConfidenceThreshold), opts.ConfidenceThreshold)
	assert.Equal(t, float32(DefaultScoreThreshold), opts.ScoreThreshold)
	assert.Equal(t, float32(DefaultIoUThreshold), opts.IoUThreshold)
	assert.Equal(t, 8400, opts.Layout.NumAnchors)
}

func TestNewModelClassCountMismatchFailsAtInit(t *testing.T) {
	args := newArgs()
	args.NumClasses = 80

	_, err := NewModel(args)

	require.Error(t, err)
	assert.True(t, errors.Is(err, classes.ErrClassCountMismatch))
}

func TestNewModelRejectsIncompleteArgs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.NewModelArgs)
	}{
		{"missing input size", func(a *model.NewModelArgs) { a.Input = images.Size{} }},
		{"missing anchors", func(a *model.NewModelArgs) { a.NumAnchors = 0 }},
		{"missing classes", func(a *model.NewModelArgs) { a.NumClasses = 0 }},
		{"missing class table", func(a *model.NewModelArgs) { a.ClassTable = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := newArgs()
			tt.mutate(&args)
			_, err := NewModel(args)
			assert.Error(t, err)
		})
	}
}

func TestPostProcessEndToEnd(t *testing.T) {
	args := newArgs()
	args.NumAnchors = 2
	args.ConfidenceThreshold = 0.1
	args.IoUThreshold = 0.5
	m, err := NewModel(args)
	require.NoError(t, err)

	// Two near-identical boxes of the same class; the higher score wins.
	output := []float32{
		320, 320, 64, 64, 0.05, 0.90, 0.10,
		322, 320, 64, 64, 0.05, 0.95, 0.10,
	}

	detections, err := m.PostProcess(output, images.Size{Width: 1280, Height: 720})
	require.NoError(t, err)

	require.Len(t, detections, 1)
	assert.Equal(t, "bicycle", detections[0].ClassName)
	assert.InDelta(t, 0.95, detections[0].Confidence, 1e-6)
	// 640 -> 1280 doubles x, 640 -> 720 scales y by 1.125.
	assert.Equal(t, float32((322-32)*2), detections[0].Box.X1)
	assert.Equal(t, float32(324), detections[0].Box.Y1)
}
