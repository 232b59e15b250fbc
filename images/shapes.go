// Package images - Geometry primitives shared by the detection pipeline.
package images

// Rect is a lightweight axis-aligned bounding box in corner form.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 float32
}

// Size holds pixel dimensions of an image or a model input plane.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.Y2 - r.Y1
}

// Area returns the area of the rectangle. Degenerate rectangles (inverted
// or collapsed corners) have zero area.
func (r Rect) Area() float32 {
	w := r.Width()
	h := r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CalculateIoU computes Intersection over Union between two corner-form
// rectangles.
//
// IoU = Area of Intersection / Area of Union, a value in [0, 1]:
//
//   - 1.0 means the rectangles are identical.
//   - 0.0 means the rectangles do not overlap at all.
//
// The union is computed by inclusion-exclusion:
//
//	Union(A, B) = Area(A) + Area(B) - Intersection(A, B)
//
// A pairing where either rectangle has zero area yields 0, and a zero
// union yields 0 rather than dividing by zero.
//
// Arguments:
//   - r: The first rectangle.
//   - o: The other rectangle to compare against.
//
// Returns:
//   - float32: The IoU score between 0.0 and 1.0.
func CalculateIoU(r, o Rect) float32 {
	// The intersection's corners are the max of the starting coordinates
	// and the min of the ending coordinates.
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	unionArea := r.Area() + o.Area() - interArea
	if unionArea <= 0 {
		return 0.0
	}

	return interArea / unionArea
}
