package sketch

import (
	"github.com/gogpu/sketch/internal/tess"
)

// vertexSink collects tessellator output into one shared vertex and index
// list. It implements tess.FillGeometryBuilder and tess.StrokeGeometryBuilder.
//
// Vertex ids handed to the tessellator are local to the current geometry;
// AddTriangle offsets them to global positions. AbortGeometry truncates
// both lists back to where the geometry began.
type vertexSink struct {
	vertices []Vertex
	indices  []uint32

	vertStart int
	idxStart  int

	// ctx tags and transforms every vertex added.
	ctx DrawContext

	// maxIndex is the largest index value a vertex may receive.
	maxIndex uint32
}

var (
	_ tess.FillGeometryBuilder   = (*vertexSink)(nil)
	_ tess.StrokeGeometryBuilder = (*vertexSink)(nil)
)

func (s *vertexSink) BeginGeometry() {
	s.vertStart = len(s.vertices)
	s.idxStart = len(s.indices)
}

func (s *vertexSink) EndGeometry() tess.Count {
	return tess.Count{
		Vertices: uint32(len(s.vertices) - s.vertStart),
		Indices:  uint32(len(s.indices) - s.idxStart),
	}
}

func (s *vertexSink) AbortGeometry() {
	s.vertices = s.vertices[:s.vertStart]
	s.indices = s.indices[:s.idxStart]
}

func (s *vertexSink) AddTriangle(a, b, c tess.VertexID) {
	off := uint32(s.vertStart)
	s.indices = append(s.indices, uint32(a)+off, uint32(b)+off, uint32(c)+off)
}

func (s *vertexSink) AddFillVertex(p tess.Point) (tess.VertexID, error) {
	c, ok := s.ctx.Fill.Get()
	if !ok {
		return 0, tess.ErrInvalidVertex
	}
	return s.add(p, c)
}

func (s *vertexSink) AddStrokeVertex(p tess.Point) (tess.VertexID, error) {
	c, ok := s.ctx.Stroke.Get()
	if !ok {
		return 0, tess.ErrInvalidVertex
	}
	return s.add(p, c)
}

func (s *vertexSink) add(p tess.Point, c RGBA) (tess.VertexID, error) {
	if uint64(len(s.vertices)) > uint64(s.maxIndex) {
		return 0, tess.ErrTooManyVertices
	}
	q := s.ctx.Transform.TransformPoint(Point{X: p.X, Y: p.Y})
	s.vertices = append(s.vertices, Vertex{
		Position: [2]float32{float32(q.X), float32(q.Y)},
		Color:    c.Float32(),
	})
	return tess.VertexID(len(s.vertices) - 1 - s.vertStart), nil
}
