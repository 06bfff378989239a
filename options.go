package sketch

import (
	"math"

	"github.com/gogpu/sketch/internal/tess"
)

// LineCap specifies the shape of open stroke ends.
type LineCap int

const (
	// LineCapButt ends the stroke flush with the end point.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half circle.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies how stroke segments meet.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges to a point, falling back to a
	// bevel past the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound joins segments with a circular arc.
	LineJoinRound
	// LineJoinBevel cuts the corner off.
	LineJoinBevel
)

// GeometryBuilderOption configures a GeometryBuilder.
//
// Example:
//
//	b := sketch.NewGeometryBuilder(
//	    sketch.WithTolerance(0.05),
//	    sketch.WithLineJoin(sketch.LineJoinRound),
//	)
type GeometryBuilderOption func(*builderOptions)

// builderOptions holds the configuration for a GeometryBuilder.
type builderOptions struct {
	maxIndex   uint32
	tolerance  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
}

// defaultBuilderOptions returns round caps, miter joins with limit 4 and
// the full uint32 index range.
func defaultBuilderOptions() builderOptions {
	return builderOptions{
		maxIndex:   math.MaxUint32,
		tolerance:  tess.DefaultTolerance,
		lineCap:    LineCapRound,
		lineJoin:   LineJoinMiter,
		miterLimit: 4,
	}
}

// WithIndexLimit sets the largest index value a frame may contain.
// Shapes that would need more vertices fail with ErrIndexOverflow.
func WithIndexLimit(maxIndex uint32) GeometryBuilderOption {
	return func(o *builderOptions) {
		o.maxIndex = maxIndex
	}
}

// WithTolerance sets the maximum distance between round caps or joins and
// their polygonal approximation. Non-positive values are ignored.
func WithTolerance(tol float64) GeometryBuilderOption {
	return func(o *builderOptions) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithLineCap sets the cap used at both ends of open strokes.
func WithLineCap(c LineCap) GeometryBuilderOption {
	return func(o *builderOptions) {
		o.lineCap = c
	}
}

// WithLineJoin sets the join used between stroke segments.
func WithLineJoin(j LineJoin) GeometryBuilderOption {
	return func(o *builderOptions) {
		o.lineJoin = j
	}
}

// WithMiterLimit sets the ratio of miter length to stroke width beyond
// which miter joins are beveled.
func WithMiterLimit(limit float64) GeometryBuilderOption {
	return func(o *builderOptions) {
		o.miterLimit = limit
	}
}

func (o builderOptions) strokeOptions(width float64) tess.StrokeOptions {
	return tess.StrokeOptions{
		LineWidth:  width,
		StartCap:   tess.LineCap(o.lineCap),
		EndCap:     tess.LineCap(o.lineCap),
		LineJoin:   tess.LineJoin(o.lineJoin),
		MiterLimit: o.miterLimit,
		Tolerance:  o.tolerance,
	}
}
