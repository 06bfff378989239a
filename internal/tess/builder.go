package tess

import "errors"

// Errors returned by tessellators and geometry builders.
var (
	// ErrTooManyVertices is returned by a builder when accepting another
	// vertex would overflow its index type.
	ErrTooManyVertices = errors.New("tess: too many vertices for index type")

	// ErrInvalidVertex is returned by a builder that cannot accept a vertex
	// in its current state.
	ErrInvalidVertex = errors.New("tess: invalid vertex")

	// ErrSelfIntersecting is returned by the fill tessellator when two
	// non-adjacent polygon edges cross.
	ErrSelfIntersecting = errors.New("tess: self-intersecting polygon")

	// ErrNoEar is returned by the fill tessellator when ear clipping cannot
	// make progress, which only happens on numerically degenerate input.
	ErrNoEar = errors.New("tess: no ear found")
)

// VertexID identifies a vertex within the geometry currently being built.
type VertexID uint32

// Count reports how many vertices and indices a geometry produced.
type Count struct {
	Vertices uint32
	Indices  uint32
}

// GeometryBuilder receives triangles from a tessellator.
//
// Each shape is bracketed by BeginGeometry and either EndGeometry or
// AbortGeometry. AbortGeometry must discard everything added since the
// matching BeginGeometry.
type GeometryBuilder interface {
	BeginGeometry()
	EndGeometry() Count
	AbortGeometry()
	AddTriangle(a, b, c VertexID)
}

// FillGeometryBuilder accepts vertices produced by FillTessellator.
type FillGeometryBuilder interface {
	GeometryBuilder
	AddFillVertex(p Point) (VertexID, error)
}

// StrokeGeometryBuilder accepts vertices produced by StrokeTessellator.
type StrokeGeometryBuilder interface {
	GeometryBuilder
	AddStrokeVertex(p Point) (VertexID, error)
}

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// DefaultTolerance is the maximum distance, in user units, between a round
// cap or join and its polygonal approximation.
const DefaultTolerance = 0.1

// StrokeOptions configures StrokeTessellator.
type StrokeOptions struct {
	LineWidth  float64
	StartCap   LineCap
	EndCap     LineCap
	LineJoin   LineJoin
	MiterLimit float64
	Tolerance  float64
}

// DefaultStrokeOptions returns a 1 unit wide stroke with butt caps and
// miter joins.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		LineWidth:  1,
		StartCap:   LineCapButt,
		EndCap:     LineCapButt,
		LineJoin:   LineJoinMiter,
		MiterLimit: 4,
		Tolerance:  DefaultTolerance,
	}
}

// WithLineWidth returns a copy of the options with the given width.
func (o StrokeOptions) WithLineWidth(w float64) StrokeOptions {
	o.LineWidth = w
	return o
}

// WithLineCap returns a copy of the options using cap at both ends.
func (o StrokeOptions) WithLineCap(c LineCap) StrokeOptions {
	o.StartCap = c
	o.EndCap = c
	return o
}

// WithLineJoin returns a copy of the options with the given join.
func (o StrokeOptions) WithLineJoin(j LineJoin) StrokeOptions {
	o.LineJoin = j
	return o
}
