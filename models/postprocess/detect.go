package postprocess

import (
	"github.com/nvr-ai/go-detect/classes"
	"github.com/nvr-ai/go-detect/images"
)

// Detect runs the full decode → rescale → suppress → assemble chain over
// one raw output tensor.
//
// The whole chain is a synchronous pure computation: O(N) decode and
// rescale, O(N²) worst-case suppression over the candidates that survive
// the confidence prefilter. An image with no detections returns an empty
// list, not an error.
//
// Arguments:
//   - output: The raw output buffer, caller-owned and only read.
//   - layout: The output tensor layout.
//   - input: The model's fixed input dimensions.
//   - imageSize: The original image dimensions for this call.
//   - table: The class-name table; expected to be validated against
//     layout.NumClasses at initialization.
//   - confThreshold: Decode prefilter, anchors with score <= are dropped.
//   - scoreThreshold: Suppression gate, independent of confThreshold.
//   - iouThreshold: Suppression overlap threshold.
//
// Returns:
//   - []Detection: Ordered per the Assemble contract.
//   - error: ErrShapeMismatch or ErrUnknownClassID; never partial output.
func Detect(
	output []float32,
	layout Layout,
	input images.Size,
	imageSize images.Size,
	table *classes.Table,
	confThreshold, scoreThreshold, iouThreshold float32,
) ([]Detection, error) {
	candidates, err := DecodeOutput(output, layout, confThreshold)
	if err != nil {
		return nil, err
	}

	boxes := RescaleBoxes(candidates, input, imageSize)

	kept := Suppress(boxes, &NMSConfig{
		ScoreThreshold: scoreThreshold,
		IoUThreshold:   iouThreshold,
	})

	return Assemble(kept, boxes, table)
}
