package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-detect/images"
)

func TestRescaleBoxesIdentity(t *testing.T) {
	// When original size equals input size the transform is the identity
	// up to rounding.
	size := images.Size{Width: 640, Height: 640}
	candidates := []Candidate{
		{CX: 100, CY: 200, W: 50, H: 80, Score: 0.9, Class: 2, Anchor: 7},
	}

	boxes := RescaleBoxes(candidates, size, size)

	require.Len(t, boxes, 1)
	assert.Equal(t, images.Rect{X1: 75, Y1: 160, X2: 125, Y2: 240}, boxes[0].Box)
	assert.Equal(t, float32(0.9), boxes[0].Score)
	assert.Equal(t, 2, boxes[0].Class)
	assert.Equal(t, 7, boxes[0].Anchor)
}

func TestRescaleBoxesPerAxisScaling(t *testing.T) {
	input := images.Size{Width: 640, Height: 640}
	original := images.Size{Width: 1280, Height: 720}
	candidates := []Candidate{
		{CX: 320, CY: 320, W: 640, H: 640},
	}

	boxes := RescaleBoxes(candidates, input, original)

	// A box covering the whole model input covers the whole image.
	assert.Equal(t, images.Rect{X1: 0, Y1: 0, X2: 1280, Y2: 720}, boxes[0].Box)
}

func TestRescaleBoxesNoClamping(t *testing.T) {
	input := images.Size{Width: 100, Height: 100}
	original := images.Size{Width: 100, Height: 100}
	candidates := []Candidate{
		// Center near the edge, box extends past both edges.
		{CX: 5, CY: 95, W: 20, H: 20},
	}

	boxes := RescaleBoxes(candidates, input, original)

	assert.Equal(t, images.Rect{X1: -5, Y1: 85, X2: 15, Y2: 105}, boxes[0].Box,
		"out-of-range corners pass through, clipping is the caller's responsibility")
}

func TestRescaleBoxesRoundsToNearest(t *testing.T) {
	input := images.Size{Width: 640, Height: 640}
	original := images.Size{Width: 963, Height: 541}
	candidates := []Candidate{
		{CX: 100.4, CY: 213.7, W: 33.3, H: 61.9},
	}

	boxes := RescaleBoxes(candidates, input, original)

	b := boxes[0].Box
	for _, v := range []float32{b.X1, b.Y1, b.X2, b.Y2} {
		assert.Equal(t, float32(int(v)), v, "corners are whole pixels")
	}
}

func TestRescaleBoxesEmpty(t *testing.T) {
	boxes := RescaleBoxes(nil, images.Size{Width: 640, Height: 640}, images.Size{Width: 640, Height: 640})
	assert.Empty(t, boxes)
}
