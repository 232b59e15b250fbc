// Package model - Shared definitions for detection model implementations.
package model

import (
	"github.com/nvr-ai/go-detect/classes"
	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// Family is the family of models.
type Family string

const (
	// ModelFamilyYOLO is the YOLO model family.
	ModelFamilyYOLO Family = "yolo"
)

// Name is the unique identifier of a model.
type Name string

const (
	// ModelNameYOLOv8 is the name of the YOLOv8 model.
	ModelNameYOLOv8 Name = "yolov8"
	// ModelNameYOLOv9 is the name of the YOLOv9 model.
	ModelNameYOLOv9 Name = "yolov9"
)

// Options is the resolved configuration a model instance runs with.
// Callers assume Options stays constant once the model is created.
type Options struct {
	Name   Name
	Family Family
	// Path is the location of the model weights file.
	Path string
	// Input is the fixed pixel size the model consumes.
	Input images.Size
	// Layout describes the raw output tensor.
	Layout postprocess.Layout
	// Classes maps class indices to names. Its length must equal
	// Layout.NumClasses.
	Classes *classes.Table
	// Thresholds for the decode and suppression stages.
	ConfidenceThreshold float32
	ScoreThreshold      float32
	IoUThreshold        float32
}

// Model is a detection model: it turns a raw output tensor into a final
// detection list for a given original image size.
type Model interface {
	Options() Options
	PostProcess(output []float32, imageSize images.Size) ([]postprocess.Detection, error)
}

// NewModelArgs is the arguments for creating a new model.
type NewModelArgs struct {
	Name                Name        `json:"name" yaml:"name"`
	Path                string      `json:"path" yaml:"path"`
	Input               images.Size `json:"input" yaml:"input"`
	NumAnchors          int         `json:"anchors" yaml:"anchors"`
	NumClasses          int         `json:"classes" yaml:"classes"`
	ChannelMajor        bool        `json:"channelMajor" yaml:"channelMajor"`
	ClassTable          *classes.Table
	ConfidenceThreshold float32 `json:"confidenceThreshold" yaml:"confidenceThreshold"`
	ScoreThreshold      float32 `json:"scoreThreshold" yaml:"scoreThreshold"`
	IoUThreshold        float32 `json:"iouThreshold" yaml:"iouThreshold"`
}
