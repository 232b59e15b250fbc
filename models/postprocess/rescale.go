package postprocess

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-detect/images"
)

// RescaleBoxes maps candidate boxes from model-input pixel space into the
// original image's pixel grid and converts them to corner form.
//
// The mapping is a pure per-axis linear scale: divide by the model input
// size, multiply by the original size. Preprocessing is assumed to have
// done a direct (non-aspect-preserving) resize, so no letterbox or padding
// inverse is applied. Corners are rounded to the nearest integer pixel;
// the transform is lossy and one-way.
//
// No clamping is performed: a box that extends past the image after
// scaling keeps its out-of-range corners, and callers needing strict
// image-bound guarantees must clip before use.
//
// Arguments:
//   - candidates: Decoded anchors in model-input pixel space.
//   - input: The model's fixed input dimensions.
//   - imageSize: The original image dimensions for this call.
//
// Returns:
//   - []ScoredBox: One corner-form box per candidate, same order.
func RescaleBoxes(candidates []Candidate, input, imageSize images.Size) []ScoredBox {
	gainX := float32(imageSize.Width) / float32(input.Width)
	gainY := float32(imageSize.Height) / float32(input.Height)

	boxes := make([]ScoredBox, len(candidates))
	for i, c := range candidates {
		halfW := c.W / 2
		halfH := c.H / 2
		boxes[i] = ScoredBox{
			Box: images.Rect{
				X1: math32.Round((c.CX - halfW) * gainX),
				Y1: math32.Round((c.CY - halfH) * gainY),
				X2: math32.Round((c.CX + halfW) * gainX),
				Y2: math32.Round((c.CY + halfH) * gainY),
			},
			Score:  c.Score,
			Class:  c.Class,
			Anchor: c.Anchor,
		}
	}
	return boxes
}
