package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-detect/classes"
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/model"
)

func validArgs(name model.Name) model.NewModelArgs {
	return model.NewModelArgs{
		Name:       name,
		Path:       "model.onnx",
		Input:      images.Size{Width: 640, Height: 640},
		NumAnchors: 8400,
		NumClasses: 2,
		ClassTable: classes.NewTable([]string{"person", "car"}),
	}
}

func TestNewModelRoutesYOLONames(t *testing.T) {
	for _, name := range []model.Name{model.ModelNameYOLOv8, model.ModelNameYOLOv9} {
		m, err := NewModel(validArgs(name))

		require.NoError(t, err, name)
		assert.Equal(t, name, m.Options().Name)
		assert.Equal(t, model.ModelFamilyYOLO, m.Options().Family)
	}
}

func TestNewModelRejectsUnknownName(t *testing.T) {
	_, err := NewModel(validArgs("fasterrcnn"))

	assert.ErrorContains(t, err, "unsupported model name")
}
