package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// TestClassColorDeterministic verifies that equal class ids always map to the
// same color and that neighboring ids differ.
func TestClassColorDeterministic(t *testing.T) {
	assert.Equal(t, ClassColor(3), ClassColor(3))
	assert.NotEqual(t, ClassColor(0), ClassColor(1))
	// Ids wrap around the palette rather than falling off the end.
	assert.Equal(t, ClassColor(1), ClassColor(1+len(palette)))
}

// TestDrawDetectionsMarksBorder draws a single box and checks that border
// pixels carry the class color while the box interior is untouched.
func TestDrawDetectionsMarksBorder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	det := postprocess.Detection{
		Box:        images.Rect{X1: 20, Y1: 20, X2: 60, Y2: 60},
		Confidence: 0.9,
		Class:      0,
		ClassName:  "person",
	}

	DrawDetections(img, []postprocess.Detection{det}, Options{LineWidth: 2})

	want := ClassColor(0)
	assert.Equal(t, want, img.RGBAAt(20, 20), "top-left corner")
	assert.Equal(t, want, img.RGBAAt(59, 59), "bottom-right corner")
	assert.Equal(t, want, img.RGBAAt(40, 21), "top edge strip")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(40, 40), "interior untouched")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(10, 10), "outside untouched")
}

// TestDrawDetectionsClipsToBounds draws a box that extends past the image on
// all sides and verifies no panic and that in-bounds border pixels are set.
func TestDrawDetectionsClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	det := postprocess.Detection{
		Box:       images.Rect{X1: -10, Y1: -10, X2: 70, Y2: 70},
		Class:     1,
		ClassName: "car",
	}

	DrawDetections(img, []postprocess.Detection{det}, Options{LineWidth: 2})

	// The visible part of the left edge starts off-image, so nothing along
	// x=0..1 belongs to the border strips that land in-bounds; the top strip
	// at y<0 is clipped away entirely. Interior stays empty.
	assert.Equal(t, color.RGBA{}, img.RGBAAt(25, 25), "interior untouched")
}

// TestDrawDetectionsSkipsOffImage verifies boxes entirely outside the image
// leave it unchanged.
func TestDrawDetectionsSkipsOffImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	det := postprocess.Detection{
		Box:   images.Rect{X1: 200, Y1: 200, X2: 300, Y2: 300},
		Class: 2,
	}

	DrawDetections(img, []postprocess.Detection{det}, DefaultOptions())

	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("pixel byte %d modified", i)
		}
	}
}

// TestDrawDetectionsLabelBackground verifies the label background is filled
// above the box when labels are enabled.
func TestDrawDetectionsLabelBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	det := postprocess.Detection{
		Box:        images.Rect{X1: 50, Y1: 50, X2: 150, Y2: 150},
		Confidence: 0.75,
		Class:      0,
		ClassName:  "person",
	}

	DrawDetections(img, []postprocess.Detection{det}, DefaultOptions())

	// A pixel just above the top edge sits inside the label background.
	assert.Equal(t, ClassColor(0), img.RGBAAt(52, 48))
}
