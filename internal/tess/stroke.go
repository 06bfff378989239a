package tess

import "math"

// StrokeTessellator converts polylines into stroke outlines made of
// triangles.
//
// Every segment becomes a quad of LineWidth thickness. Interior vertices
// (and every vertex of a closed polyline) get a join wedge on the outer side
// of the turn; open ends get caps.
type StrokeTessellator struct{}

// NewStrokeTessellator creates a new stroke tessellator.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{}
}

// Tessellate strokes pl and feeds the result to out.
//
// A polyline with no points, or a non-positive line width, produces an empty
// geometry. A single point produces a dot for round and square caps.
func (st *StrokeTessellator) Tessellate(pl Polyline, opts StrokeOptions, out StrokeGeometryBuilder) error {
	pts := pl.cleaned()

	out.BeginGeometry()
	hw := opts.LineWidth / 2
	if len(pts) == 0 || !(hw > 0) || math.IsInf(hw, 0) {
		out.EndGeometry()
		return nil
	}

	e := strokeEmitter{out: out, hw: hw, opts: opts}
	var err error
	if len(pts) == 1 {
		err = e.dot(pts[0])
	} else {
		err = e.polyline(pts, pl.Closed)
	}
	if err != nil {
		out.AbortGeometry()
		return err
	}
	out.EndGeometry()
	return nil
}

// strokeEmitter holds the per-call stroke state.
type strokeEmitter struct {
	out  StrokeGeometryBuilder
	hw   float64
	opts StrokeOptions
	ids  []VertexID
}

func (e *strokeEmitter) polyline(pts []Point, closed bool) error {
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}

	dirs := make([]Vec2, segs)
	for i := range dirs {
		dirs[i] = pts[(i+1)%n].Sub(pts[i]).Normalize()
	}

	for i, d := range dirs {
		a, b := pts[i], pts[(i+1)%n]
		off := d.Perp().Scale(e.hw)
		if err := e.quad(a.Add(off), b.Add(off), b.Add(off.Neg()), a.Add(off.Neg())); err != nil {
			return err
		}
	}

	if closed {
		for i := 0; i < n; i++ {
			if err := e.join(pts[i], dirs[(i+segs-1)%segs], dirs[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 1; i < n-1; i++ {
		if err := e.join(pts[i], dirs[i-1], dirs[i]); err != nil {
			return err
		}
	}
	if err := e.lineCap(pts[0], dirs[0].Neg(), e.opts.StartCap); err != nil {
		return err
	}
	return e.lineCap(pts[n-1], dirs[segs-1], e.opts.EndCap)
}

// join fills the wedge between two consecutive segments meeting at p with
// unit directions d0 and d1.
func (e *strokeEmitter) join(p Point, d0, d1 Vec2) error {
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-9 && d0.Dot(d1) > 0 {
		return nil
	}

	// The outer side of a left turn is the right-hand side.
	o0 := d0.Perp().Scale(e.hw)
	o1 := d1.Perp().Scale(e.hw)
	if cross > 0 {
		o0, o1 = o0.Neg(), o1.Neg()
	}

	switch e.opts.LineJoin {
	case LineJoinRound:
		sweep := math.Atan2(o0.Cross(o1), o0.Dot(o1))
		return e.arc(p, o0, sweep)
	case LineJoinMiter:
		mid := o0.Add(o1)
		if ml := mid.Length(); ml > 1e-9 {
			cosHalf := mid.Scale(1 / ml).Dot(o0) / e.hw
			if cosHalf > 1e-9 && 1/cosHalf <= e.opts.MiterLimit {
				tip := p.Add(mid.Scale(e.hw / (ml * cosHalf)))
				return e.quad(p, p.Add(o0), tip, p.Add(o1))
			}
		}
	}
	return e.triangle(p, p.Add(o0), p.Add(o1))
}

// lineCap closes an open end at p. dir points away from the stroke.
func (e *strokeEmitter) lineCap(p Point, dir Vec2, c LineCap) error {
	off := dir.Perp().Scale(e.hw)
	switch c {
	case LineCapRound:
		return e.arc(p, off, -math.Pi)
	case LineCapSquare:
		ext := dir.Scale(e.hw)
		return e.quad(p.Add(off), p.Add(off).Add(ext), p.Add(off.Neg()).Add(ext), p.Add(off.Neg()))
	}
	return nil
}

// dot strokes a single point.
func (e *strokeEmitter) dot(p Point) error {
	switch e.opts.StartCap {
	case LineCapRound:
		return e.arc(p, Vec2{X: e.hw}, 2*math.Pi)
	case LineCapSquare:
		h := e.hw
		return e.quad(Pt(p.X-h, p.Y-h), Pt(p.X+h, p.Y-h), Pt(p.X+h, p.Y+h), Pt(p.X-h, p.Y+h))
	}
	return nil
}

// maxArcSteps bounds the segments used for half a circle.
const maxArcSteps = 256

// arc emits a triangle fan around center starting at offset from and
// turning by sweep radians. Rim vertices are added one at a time so a
// builder limit stops the fan early.
func (e *strokeEmitter) arc(center Point, from Vec2, sweep float64) error {
	limit := math.Ceil(maxArcSteps * math.Abs(sweep) / math.Pi)
	steps := int(math.Max(1, math.Min(math.Ceil(math.Abs(sweep)/e.arcStep()), limit)))
	start := math.Atan2(from.Y, from.X)

	hub, err := e.out.AddStrokeVertex(center)
	if err != nil {
		return err
	}
	var prev Point
	var prevID VertexID
	for k := 0; k <= steps; k++ {
		a := start + sweep*float64(k)/float64(steps)
		p := Pt(center.X+e.hw*math.Cos(a), center.Y+e.hw*math.Sin(a))
		id, err := e.out.AddStrokeVertex(p)
		if err != nil {
			return err
		}
		if k > 0 {
			switch o := orient(center, prev, p); {
			case o > 0:
				e.out.AddTriangle(hub, prevID, id)
			case o < 0:
				e.out.AddTriangle(hub, id, prevID)
			}
		}
		prev, prevID = p, id
	}
	return nil
}

// arcStep returns the largest angle a chord may span while staying within
// the tolerance of the true circle.
func (e *strokeEmitter) arcStep() float64 {
	tol := e.opts.Tolerance
	if !(tol > 0) {
		tol = DefaultTolerance
	}
	if tol >= e.hw {
		return math.Pi / 2
	}
	r := tol / e.hw
	if r < 1e-6 {
		// acos(1-r) ~ sqrt(2r); 1-r rounds to 1 for very wide strokes.
		return 2 * math.Sqrt(2*r)
	}
	return 2 * math.Acos(1-r)
}

// quad emits the convex quadrilateral a, b, c, d given in cyclic order.
func (e *strokeEmitter) quad(a, b, c, d Point) error {
	pts := [...]Point{a, b, c, d}
	if err := e.vertices(pts[:]...); err != nil {
		return err
	}
	e.emit(pts[:], 0, 1, 2)
	e.emit(pts[:], 0, 2, 3)
	return nil
}

func (e *strokeEmitter) triangle(a, b, c Point) error {
	pts := [...]Point{a, b, c}
	if err := e.vertices(pts[:]...); err != nil {
		return err
	}
	e.emit(pts[:], 0, 1, 2)
	return nil
}

// vertices adds pts to the builder, leaving their ids in e.ids.
func (e *strokeEmitter) vertices(pts ...Point) error {
	e.ids = e.ids[:0]
	for _, p := range pts {
		id, err := e.out.AddStrokeVertex(p)
		if err != nil {
			return err
		}
		e.ids = append(e.ids, id)
	}
	return nil
}

// emit adds the triangle (i, j, k) over the most recent vertices, ordered
// for positive signed area. Degenerate triangles are skipped.
func (e *strokeEmitter) emit(pts []Point, i, j, k int) {
	o := orient(pts[i], pts[j], pts[k])
	switch {
	case o > 0:
		e.out.AddTriangle(e.ids[i], e.ids[j], e.ids[k])
	case o < 0:
		e.out.AddTriangle(e.ids[i], e.ids[k], e.ids[j])
	}
}
