package postprocess

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Layout describes the raw output tensor of a detection model: N anchor
// rows of (4 + C) float32 fields, either anchor-major or channel-major.
// Fixed at model-load time, immutable thereafter.
type Layout struct {
	NumAnchors int `json:"anchors" yaml:"anchors"`
	NumClasses int `json:"classes" yaml:"classes"`
	// ChannelMajor is true when the runtime emits (4+C) × N instead of
	// N × (4+C). The YOLOv8/v9 ONNX export does.
	ChannelMajor bool `json:"channelMajor" yaml:"channelMajor"`
}

// FieldsPerAnchor returns the per-anchor field count: 4 box coordinates
// plus one score per class.
func (l Layout) FieldsPerAnchor() int {
	return 4 + l.NumClasses
}

// DecodeOutput scans the raw output buffer and returns the anchors whose
// best class score exceeds confThreshold, in anchor order.
//
// Each anchor's score is the maximum of its C class fields and its class is
// the index of that maximum; ties pick the lowest index, so decoding is
// deterministic. Multi-label anchors are not supported.
//
// Arguments:
//   - output: The raw float32 buffer, caller-owned and only read.
//   - layout: The tensor layout; channel-major buffers are normalized to
//     anchor-major before scanning.
//   - confThreshold: Anchors with score <= confThreshold are discarded.
//
// Returns:
//   - []Candidate: Surviving anchors in original anchor order.
//   - error: ErrShapeMismatch when the buffer length does not equal
//     NumAnchors * (4 + NumClasses).
func DecodeOutput(output []float32, layout Layout, confThreshold float32) ([]Candidate, error) {
	fields := layout.FieldsPerAnchor()
	if layout.NumAnchors <= 0 || layout.NumClasses <= 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "layout %dx%d is not usable",
			layout.NumAnchors, fields)
	}
	if len(output) != layout.NumAnchors*fields {
		return nil, errors.Wrapf(ErrShapeMismatch, "buffer holds %d floats, layout %dx%d needs %d",
			len(output), layout.NumAnchors, fields, layout.NumAnchors*fields)
	}

	rows := output
	if layout.ChannelMajor {
		normalized, err := toAnchorMajor(output, layout)
		if err != nil {
			return nil, err
		}
		rows = normalized
	}

	candidates := make([]Candidate, 0, 64)
	for anchor := 0; anchor < layout.NumAnchors; anchor++ {
		offset := anchor * fields

		// Argmax over the class columns. Strict comparison keeps the
		// lowest index on ties.
		class := 0
		score := rows[offset+4]
		for c := 1; c < layout.NumClasses; c++ {
			if s := rows[offset+4+c]; s > score {
				score = s
				class = c
			}
		}

		if score <= confThreshold {
			continue
		}

		candidates = append(candidates, Candidate{
			CX:     rows[offset+0],
			CY:     rows[offset+1],
			W:      rows[offset+2],
			H:      rows[offset+3],
			Score:  score,
			Class:  class,
			Anchor: anchor,
		})
	}

	return candidates, nil
}

// toAnchorMajor transposes a (4+C) × N buffer into N × (4+C). The input is
// caller-owned, so the transpose works on a copy.
func toAnchorMajor(output []float32, layout Layout) ([]float32, error) {
	backing := make([]float32, len(output))
	copy(backing, output)

	src := tensor.New(
		tensor.WithShape(layout.FieldsPerAnchor(), layout.NumAnchors),
		tensor.WithBacking(backing),
	)
	transposed, err := tensor.Transpose(src, 1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to transpose channel-major output")
	}

	rows, ok := transposed.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("transposed tensor holds %T, expected []float32", transposed.Data())
	}
	return rows, nil
}
