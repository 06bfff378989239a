package sketch

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vertex is one output vertex: a transformed position and the color of
// the context its shape was drawn in.
type Vertex struct {
	Position [2]float32
	Color    [4]float32
}

// VertexStride is the size in bytes of an encoded Vertex.
const VertexStride = 24

// Pass identifies which tessellation pass produced a span of indices.
type Pass uint8

const (
	PassFill Pass = iota
	PassStroke
)

// String returns the name of the pass.
func (p Pass) String() string {
	switch p {
	case PassFill:
		return "fill"
	case PassStroke:
		return "stroke"
	default:
		return fmt.Sprintf("Pass(%d)", uint8(p))
	}
}

// Span is the index range produced by one pass over one shape.
type Span struct {
	Pass Pass
	// Command is the position of the DrawShapeCommand in its buffer.
	Command    int
	FirstIndex uint32
	IndexCount uint32
}

// Frame holds the triangle mesh built from one CommandBuffer.
//
// Fill and stroke geometry share Vertices and Indices. For every shape the
// fill triangles come first, then the stroke triangles, and shapes follow
// command order. Spans lists the non-empty ranges in that order. Every
// index is less than len(Vertices) and len(Indices) is a multiple of 3.
type Frame struct {
	Vertices []Vertex
	Indices  []uint32
	Spans    []Span
	// Clear is the color to clear the target with before drawing.
	Clear OptionalColor
}

// Empty reports whether the frame has no triangles.
func (f *Frame) Empty() bool {
	return len(f.Indices) == 0
}

// Triangles returns the number of triangles in the frame.
func (f *Frame) Triangles() int {
	return len(f.Indices) / 3
}

// VertexBytes encodes the vertices as little-endian float32s, position
// followed by color, VertexStride bytes per vertex.
func (f *Frame) VertexBytes() []byte {
	buf := make([]byte, len(f.Vertices)*VertexStride)
	off := 0
	for _, v := range f.Vertices {
		for _, x := range v.Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
			off += 4
		}
		for _, x := range v.Color {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
			off += 4
		}
	}
	return buf
}

// IndexBytes encodes the indices as little-endian uint32s.
func (f *Frame) IndexBytes() []byte {
	buf := make([]byte, len(f.Indices)*4)
	for i, idx := range f.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
