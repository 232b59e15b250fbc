// Package postprocess - Decode, rescale, suppression and assembly for raw
// detection model outputs.
//
// Every function in this package is a pure transform over its inputs: no
// shared state is mutated, the raw output buffer is only read, and the same
// inputs always produce bit-identical results. Concurrent callers need no
// coordination.
package postprocess

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/images"
)

// ErrShapeMismatch reports a raw output buffer whose length is inconsistent
// with the configured (4 + C) per-anchor layout.
var ErrShapeMismatch = errors.New("output tensor shape does not match configured layout")

// ErrUnknownClassID reports a class index with no entry in the class table.
// With a table validated against the model's class count this cannot occur;
// it guards the assembly stage against misconfiguration.
var ErrUnknownClassID = errors.New("class id has no entry in class table")

// Candidate is one anchor row that survived the confidence prefilter.
// Its box is center-size, in model-input pixel space.
type Candidate struct {
	CX, CY, W, H float32
	// Score is the maximum class score of the anchor.
	Score float32
	// Class is the argmax class index.
	Class int
	// Anchor is the row index in the raw output, kept for deterministic
	// tie-breaking downstream.
	Anchor int
}

// ScoredBox is a candidate after rescaling: corner form, original-image
// pixel space.
type ScoredBox struct {
	Box    images.Rect
	Score  float32
	Class  int
	Anchor int
}

// Detection is the externally visible result of one suppressed, rescaled,
// labeled candidate. Immutable once constructed.
type Detection struct {
	// Box is in original-image pixel space. Corners are not clamped to the
	// image bounds; callers needing strict bounds must clip before use.
	Box images.Rect
	// Confidence is the class score in [0, 1].
	Confidence float32
	// Class is the model's class index.
	Class int
	// ClassName is the label looked up from the class table.
	ClassName string
}

func (d Detection) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%.2f, %.2f), (%.2f, %.2f)",
		d.ClassName, d.Confidence, d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2)
}
