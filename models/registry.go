// Package models - registry for detection models.
package models

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/yolo"
)

// NewModel creates a new detection model instance based on the specified
// model name.
//
// This factory is the primary entry point for model creation: it routes to
// the model-specific constructor while keeping a single call site for
// callers that configure models from files.
//
// Arguments:
//   - args: Configuration parameters specifying the model name, weights
//     location, geometry and class table.
//
// Returns:
//   - model.Model: A configured model implementing the Model interface.
//   - error: An error if the model name is unsupported or validation
//     fails.
func NewModel(args model.NewModelArgs) (model.Model, error) {
	switch args.Name {
	case model.ModelNameYOLOv8, model.ModelNameYOLOv9:
		return yolo.NewModel(args)
	default:
		return nil, errors.Errorf("unsupported model name: %s", args.Name)
	}
}
