package sketch

import "fmt"

// AnchorMode determines how a shape's authored position maps onto its
// geometry.
type AnchorMode int

const (
	// AnchorFirstPoint leaves points as authored; the first point of the
	// shape sits at the requested position.
	AnchorFirstPoint AnchorMode = iota

	// AnchorCenter moves the shape so that the center of its bounding box
	// sits at the requested position.
	AnchorCenter
)

// String returns the name of the anchor mode.
func (m AnchorMode) String() string {
	switch m {
	case AnchorFirstPoint:
		return "first-point"
	case AnchorCenter:
		return "center"
	default:
		return fmt.Sprintf("AnchorMode(%d)", int(m))
	}
}

// BoundingBox is an axis-aligned box given by two corners.
type BoundingBox struct {
	Min, Max Point
}

// BoundingBoxOf returns the smallest box containing pts.
// An empty slice yields the zero box.
func BoundingBoxOf(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	return b
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box.
func (b BoundingBox) Size() Point {
	return b.Max.Sub(b.Min)
}

// alignPoints returns pts repositioned for mode. box is the shape's
// bounding box with Min at the authored position; nil means compute it
// from pts. The input slice is never modified.
func alignPoints(pts []Point, mode AnchorMode, box *BoundingBox) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	if mode != AnchorCenter || len(out) == 0 {
		return out
	}

	b := BoundingBoxOf(pts)
	if box != nil {
		b = *box
	}
	shift := b.Center().Sub(b.Min)
	for i := range out {
		out[i] = out[i].Sub(shift)
	}
	return out
}
