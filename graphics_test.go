package sketch

import (
	"math"
	"testing"
)

// commandTypes returns the type of every recorded command.
func commandTypes(cmds []Command) []CommandType {
	out := make([]CommandType, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type()
	}
	return out
}

func assertTypes(t *testing.T, cmds []Command, want ...CommandType) {
	t.Helper()
	got := commandTypes(cmds)
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commands = %v, want %v", got, want)
		}
	}
}

func assertPoints(t *testing.T, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("points = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Fatalf("points = %v, want %v", got, want)
		}
	}
}

func TestGraphicsRectFirstPoint(t *testing.T) {
	g := NewGraphics()
	g.AnchorMode(AnchorFirstPoint)
	g.NoStroke()
	g.Fill(Red)
	g.Rect(Pt(0, 0), Pt(10, 10))

	cmds := g.Commands()
	assertTypes(t, cmds, CmdContextChanged, CmdDrawShape)

	cc := cmds[0].(ContextChangedCommand)
	if cc.Context.Fill != Some(Red) || cc.Context.Stroke.Valid {
		t.Errorf("context fill = %+v, stroke = %+v", cc.Context.Fill, cc.Context.Stroke)
	}

	shape := cmds[1].(DrawShapeCommand)
	if !shape.Closed {
		t.Error("rect should be closed")
	}
	assertPoints(t, shape.Points, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)})
}

func TestGraphicsSquareCenter(t *testing.T) {
	g := NewGraphics()
	g.AnchorMode(AnchorCenter)
	g.Square(Pt(50, 50), 20)

	cmds := g.Commands()
	shape := cmds[len(cmds)-1].(DrawShapeCommand)
	assertPoints(t, shape.Points, []Point{Pt(40, 40), Pt(60, 40), Pt(60, 60), Pt(40, 60)})

	if c := BoundingBoxOf(shape.Points).Center(); c != Pt(50, 50) {
		t.Errorf("center = %v, want (50, 50)", c)
	}
}

func TestGraphicsAnchorCenterProperty(t *testing.T) {
	tests := []struct {
		name     string
		pos, siz Point
	}{
		{"unit", Pt(0, 0), Pt(1, 1)},
		{"wide", Pt(10, 20), Pt(300, 7)},
		{"tall", Pt(-5, 3), Pt(2, 90)},
		{"fractional", Pt(0.25, 0.75), Pt(0.5, 1.5)},
		{"negative size", Pt(10, 10), Pt(-4, -6)},
		{"zero size", Pt(7, 8), Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraphics()
			g.Rect(tt.pos, tt.siz)

			cmds := g.Commands()
			shape := cmds[len(cmds)-1].(DrawShapeCommand)
			c := BoundingBoxOf(shape.Points).Center()
			if math.Abs(c.X-tt.pos.X) > 1e-9 || math.Abs(c.Y-tt.pos.Y) > 1e-9 {
				t.Errorf("center = %v, want %v", c, tt.pos)
			}
		})
	}
}

func TestGraphicsSaveRestoreTransforms(t *testing.T) {
	g := NewGraphics()
	g.AngleMode(AngleDegrees)
	g.Save()
	g.Rotate(90)
	g.Translate(Pt(10, 0))
	g.Square(Pt(0, 0), 5)
	g.Restore()
	g.Square(Pt(0, 0), 5)

	cmds := g.Commands()
	assertTypes(t, cmds, CmdContextChanged, CmdDrawShape, CmdContextChanged, CmdDrawShape)

	first := cmds[0].(ContextChangedCommand).Context.Transform
	second := cmds[2].(ContextChangedCommand).Context.Transform

	want := Translate(10, 0).Multiply(Rotate(math.Pi / 2))
	if !first.ApproxEqual(want, 1e-12) {
		t.Errorf("first transform = %+v, want %+v", first, want)
	}
	if !second.IsIdentity() {
		t.Errorf("second transform = %+v, want identity", second)
	}
	if p := first.TransformPoint(Pt(1, 0)); math.Abs(p.X-10) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Errorf("transformed (1, 0) = %v, want (10, 1)", p)
	}
}

func TestGraphicsContextFlushOrder(t *testing.T) {
	g := NewGraphics()
	g.Fill(Red)
	g.Fill(Green)
	g.Square(Pt(0, 0), 1)
	g.Square(Pt(2, 0), 1)
	g.Stroke(Blue)
	g.Square(Pt(4, 0), 1)
	g.Fill(White)

	cmds := g.Commands()
	assertTypes(t, cmds, CmdContextChanged, CmdDrawShape, CmdDrawShape, CmdContextChanged, CmdDrawShape)

	if got := cmds[0].(ContextChangedCommand).Context.Fill; got != Some(Green) {
		t.Errorf("first context fill = %+v, want green", got)
	}
	second := cmds[3].(ContextChangedCommand).Context
	if second.Fill != Some(Green) || second.Stroke != Some(Blue) {
		t.Errorf("second context fill = %+v, stroke = %+v", second.Fill, second.Stroke)
	}
}

func TestGraphicsCleanContextRecordsNoChange(t *testing.T) {
	g := NewGraphics()
	g.Square(Pt(0, 0), 1)
	assertTypes(t, g.Commands(), CmdDrawShape)

	buf := g.Finish()
	if buf.Initial() != DefaultContext() {
		t.Errorf("initial context = %+v, want default", buf.Initial())
	}
}

func TestGraphicsRestoreFloor(t *testing.T) {
	g := NewGraphics()
	for range 3 {
		g.Restore()
		if d := g.StackDepth(); d != 1 {
			t.Fatalf("StackDepth() = %d, want 1", d)
		}
	}
	// A restore that pops nothing leaves the context clean.
	g.Square(Pt(0, 0), 1)
	assertTypes(t, g.Commands(), CmdDrawShape)

	g.Push()
	g.Push()
	if d := g.StackDepth(); d != 3 {
		t.Fatalf("StackDepth() = %d, want 3", d)
	}
	g.Pop()
	g.Pop()
	g.Pop()
	if d := g.StackDepth(); d != 1 {
		t.Fatalf("StackDepth() = %d, want 1", d)
	}
}

func TestGraphicsScopedIsolation(t *testing.T) {
	g := NewGraphics()
	g.Fill(Red)
	before := g.Context()

	g.Scoped(func(s *Graphics) {
		s.Fill(Blue)
		s.Stroke(Green)
		s.StrokeWeight(8)
		s.Rotate(1)
		s.Translate(Pt(5, 5))
		s.AnchorMode(AnchorFirstPoint)
		s.Square(Pt(0, 0), 3)
	})
	g.Square(Pt(0, 0), 3)

	if g.Context() != before {
		t.Errorf("context after scope = %+v, want %+v", g.Context(), before)
	}

	cmds := g.Commands()
	assertTypes(t, cmds, CmdContextChanged, CmdDrawShape, CmdContextChanged, CmdDrawShape)

	inner := cmds[0].(ContextChangedCommand).Context
	if inner.Fill != Some(Blue) || inner.AnchorMode != AnchorFirstPoint {
		t.Errorf("scoped context = %+v", inner)
	}
	outer := cmds[2].(ContextChangedCommand).Context
	if outer != before {
		t.Errorf("context after scope = %+v, want %+v", outer, before)
	}
	assertPoints(t, cmds[3].(DrawShapeCommand).Points, []Point{Pt(-1.5, -1.5), Pt(1.5, -1.5), Pt(1.5, 1.5), Pt(-1.5, 1.5)})
}

func TestGraphicsScopedInheritsPendingChange(t *testing.T) {
	g := NewGraphics()
	g.Fill(Red)
	g.Scoped(func(s *Graphics) {
		s.Square(Pt(0, 0), 1)
	})

	cmds := g.Commands()
	assertTypes(t, cmds, CmdContextChanged, CmdDrawShape, CmdContextChanged)
	if got := cmds[0].(ContextChangedCommand).Context.Fill; got != Some(Red) {
		t.Errorf("scoped shape fill = %+v, want red", got)
	}
}

func TestGraphicsStrokeWeightClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{3, 3},
		{0, 0},
		{-2, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		g := NewGraphics()
		g.StrokeWeight(tt.in)
		if got := g.Context().StrokeWeight; got != tt.want {
			t.Errorf("StrokeWeight(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGraphicsAngleMode(t *testing.T) {
	rad := NewGraphics()
	rad.Rotate(math.Pi / 3)

	deg := NewGraphics()
	deg.AngleMode(AngleDegrees)
	deg.Rotate(60)

	if !rad.Context().Transform.ApproxEqual(deg.Context().Transform, 1e-12) {
		t.Errorf("radians = %+v, degrees = %+v", rad.Context().Transform, deg.Context().Transform)
	}
}

func TestGraphicsTransformRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		v     Point
		angle float64
	}{
		{"zero", Pt(0, 0), 0},
		{"quarter", Pt(10, 0), math.Pi / 2},
		{"arbitrary", Pt(-3.5, 12), 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraphics()
			g.Translate(tt.v)
			g.Rotate(tt.angle)
			forward := g.Context().Transform
			g.Rotate(-tt.angle)
			g.Translate(tt.v.Mul(-1))

			if got := g.Context().Transform; !got.ApproxEqual(Identity(), 1e-12) {
				t.Errorf("round trip = %+v, want identity", got)
			}

			h := NewGraphics()
			h.Rotate(-tt.angle)
			h.Translate(tt.v.Mul(-1))
			back := h.Context().Transform
			if !forward.Multiply(back).ApproxEqual(Identity(), 1e-12) {
				t.Errorf("forward * back = %+v, want identity", forward.Multiply(back))
			}
		})
	}
}

func TestGraphicsClear(t *testing.T) {
	g := NewGraphics()
	if g.Finish().Clear().Valid {
		t.Error("new graphics should not clear")
	}

	g = NewGraphics()
	g.Clear(White)
	if c, ok := g.Finish().Clear().Get(); !ok || c != White {
		t.Errorf("Clear() = %v, %v, want white", c, ok)
	}

	g = NewGraphics()
	g.Clear(White)
	g.NoClear()
	if g.Finish().Clear().Valid {
		t.Error("NoClear should drop the clear color")
	}
}

func TestRecordedContextIsSnapshot(t *testing.T) {
	g := NewGraphics()
	g.Fill(Red)
	g.Square(Pt(0, 0), 1)
	g.Fill(Blue)
	g.Translate(Pt(3, 4))

	cc := g.Commands()[0].(ContextChangedCommand)
	if cc.Context.Fill != Some(Red) || !cc.Context.Transform.IsIdentity() {
		t.Errorf("recorded context changed after recording: %+v", cc.Context)
	}
}
