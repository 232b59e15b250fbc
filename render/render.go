// Package render draws detection results onto images: a colored box per
// detection plus a class-name/confidence label. Colors are assigned per
// class id so the same class always renders the same color.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nvr-ai/go-detect/models/postprocess"
)

// palette holds the distinguishable colors cycled through by class id.
var palette = []color.RGBA{
	{230, 25, 75, 255},
	{60, 180, 75, 255},
	{255, 225, 25, 255},
	{0, 130, 200, 255},
	{245, 130, 48, 255},
	{145, 30, 180, 255},
	{70, 240, 240, 255},
	{240, 50, 230, 255},
	{210, 245, 60, 255},
	{250, 190, 190, 255},
	{0, 128, 128, 255},
	{170, 110, 40, 255},
}

// ClassColor returns the box color used for a class id. The mapping is
// deterministic: equal ids always produce equal colors.
func ClassColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return palette[classID%len(palette)]
}

// Options control how detections are rendered.
type Options struct {
	// LineWidth is the border thickness in pixels. Zero means 2.
	LineWidth int
	// DrawLabels controls whether the class name and confidence are drawn
	// above each box.
	DrawLabels bool
}

// DefaultOptions returns the rendering defaults: 2px borders with labels.
func DefaultOptions() Options {
	return Options{LineWidth: 2, DrawLabels: true}
}

// DrawDetections draws each detection's bounding box and label onto dst.
// Boxes are clipped to the image bounds at draw time; detections entirely
// outside the image are skipped.
//
// Arguments:
//   - dst: The image to draw onto, typically the decoded source frame.
//   - detections: The detections to render.
//   - opts: Rendering options. Use DefaultOptions() for sane defaults.
func DrawDetections(dst *image.RGBA, detections []postprocess.Detection, opts Options) {
	lineWidth := opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = 2
	}
	bounds := dst.Bounds()
	for _, det := range detections {
		box := image.Rect(
			int(det.Box.X1), int(det.Box.Y1),
			int(det.Box.X2), int(det.Box.Y2),
		)
		if !box.Overlaps(bounds) {
			continue
		}
		c := ClassColor(det.Class)
		drawBorder(dst, box, c, lineWidth)
		if opts.DrawLabels {
			label := fmt.Sprintf("%s %.2f", det.ClassName, det.Confidence)
			drawLabel(dst, box, label, c)
		}
	}
}

// drawBorder fills the four edge strips of box, clipped to dst's bounds.
func drawBorder(dst *image.RGBA, box image.Rectangle, c color.RGBA, width int) {
	src := &image.Uniform{c}
	edges := []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+width), // top
		image.Rect(box.Min.X, box.Max.Y-width, box.Max.X, box.Max.Y), // bottom
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+width, box.Max.Y), // left
		image.Rect(box.Max.X-width, box.Min.Y, box.Max.X, box.Max.Y), // right
	}
	for _, edge := range edges {
		draw.Draw(dst, edge.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel renders text on a filled background above the box, or inside
// its top edge when the box touches the top of the image.
func drawLabel(dst *image.RGBA, box image.Rectangle, label string, c color.RGBA) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	textWidth := font.MeasureString(face, label).Ceil()
	textHeight := metrics.Ascent.Ceil() + metrics.Descent.Ceil()

	bg := image.Rect(box.Min.X, box.Min.Y-textHeight-2, box.Min.X+textWidth+4, box.Min.Y)
	if bg.Min.Y < dst.Bounds().Min.Y {
		bg = bg.Add(image.Pt(0, textHeight+2))
	}
	draw.Draw(dst, bg.Intersect(dst.Bounds()), &image.Uniform{c}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{textColorFor(c)},
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(bg.Min.X + 2),
			Y: fixed.I(bg.Min.Y + 1 + metrics.Ascent.Ceil()),
		},
	}
	drawer.DrawString(label)
}

// textColorFor picks black or white text for legibility on the background.
func textColorFor(bg color.RGBA) color.RGBA {
	// Perceived luminance, integer approximation.
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma > 128 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
