package sketch

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFrameVertexBytes(t *testing.T) {
	f := &Frame{Vertices: []Vertex{
		{Position: [2]float32{1, 2}, Color: [4]float32{0.1, 0.2, 0.3, 0.4}},
		{Position: [2]float32{-3, 4}, Color: [4]float32{1, 1, 1, 1}},
	}}
	b := f.VertexBytes()
	if len(b) != 2*VertexStride {
		t.Fatalf("len = %d, want %d", len(b), 2*VertexStride)
	}
	want := []float32{1, 2, 0.1, 0.2, 0.3, 0.4, -3, 4, 1, 1, 1, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestFrameIndexBytes(t *testing.T) {
	f := &Frame{Indices: []uint32{0, 1, 70000}}
	b := f.IndexBytes()
	if len(b) != 12 {
		t.Fatalf("len = %d, want 12", len(b))
	}
	if got := binary.LittleEndian.Uint32(b[8:]); got != 70000 {
		t.Errorf("index 2 = %d, want 70000", got)
	}
	if f.Triangles() != 1 || f.Empty() {
		t.Errorf("Triangles() = %d, Empty() = %v", f.Triangles(), f.Empty())
	}
}

func TestPassString(t *testing.T) {
	for p, want := range map[Pass]string{PassFill: "fill", PassStroke: "stroke", Pass(7): "Pass(7)"} {
		if got := p.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdDrawShape, "DrawShape"},
		{CmdContextChanged, "ContextChanged"},
		{CommandType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
