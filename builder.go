package sketch

import (
	"github.com/gogpu/sketch/internal/tess"
)

// GeometryBuilder turns a CommandBuffer into a Frame.
//
// Build replays the buffer in order. Each DrawShapeCommand is filled when
// the current context has a fill color and stroked when it has a stroke
// color, using the context's stroke weight. Vertices take the color and
// transform of the context in effect when the shape was recorded.
//
// A GeometryBuilder may be reused across frames but is not safe for
// concurrent use.
type GeometryBuilder struct {
	opts   builderOptions
	fill   *tess.FillTessellator
	stroke *tess.StrokeTessellator
}

// NewGeometryBuilder creates a GeometryBuilder with the given options.
func NewGeometryBuilder(opts ...GeometryBuilderOption) *GeometryBuilder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GeometryBuilder{
		opts:   o,
		fill:   tess.NewFillTessellator(),
		stroke: tess.NewStrokeTessellator(),
	}
}

// Build tessellates every shape in buf.
//
// Any failure aborts the whole frame: Build returns a nil Frame and a
// *TessellationError naming the command and pass that failed. buf is not
// modified, so building the same buffer twice yields identical frames.
func (b *GeometryBuilder) Build(buf *CommandBuffer) (*Frame, error) {
	sink := &vertexSink{
		ctx:      buf.Initial(),
		maxIndex: b.opts.maxIndex,
	}
	frame := &Frame{Clear: buf.Clear()}

	for i, cmd := range buf.Commands() {
		switch c := cmd.(type) {
		case ContextChangedCommand:
			sink.ctx = c.Context

		case DrawShapeCommand:
			pl := tess.Polyline{Points: toTessPoints(c.Points), Closed: c.Closed}

			if sink.ctx.Fill.Valid {
				first := len(sink.indices)
				if err := b.fill.Tessellate(pl, sink); err != nil {
					return nil, &TessellationError{Command: i, Pass: PassFill, Err: err}
				}
				frame.addSpan(PassFill, i, first, len(sink.indices))
			}

			if sink.ctx.Stroke.Valid {
				first := len(sink.indices)
				opts := b.opts.strokeOptions(sink.ctx.StrokeWeight)
				if err := b.stroke.Tessellate(pl, opts, sink); err != nil {
					return nil, &TessellationError{Command: i, Pass: PassStroke, Err: err}
				}
				frame.addSpan(PassStroke, i, first, len(sink.indices))
			}
		}
	}

	frame.Vertices = sink.vertices
	frame.Indices = sink.indices

	Logger().Debug("geometry built",
		"commands", buf.Len(),
		"vertices", len(frame.Vertices),
		"indices", len(frame.Indices),
		"spans", len(frame.Spans))

	return frame, nil
}

// addSpan records the indices [first, end) when non-empty.
func (f *Frame) addSpan(pass Pass, cmd, first, end int) {
	if end <= first {
		return
	}
	f.Spans = append(f.Spans, Span{
		Pass:       pass,
		Command:    cmd,
		FirstIndex: uint32(first),
		IndexCount: uint32(end - first),
	})
}

func toTessPoints(pts []Point) []tess.Point {
	out := make([]tess.Point, len(pts))
	for i, p := range pts {
		out[i] = tess.Point{X: p.X, Y: p.Y}
	}
	return out
}
