package tess

import "math"

// areaEpsilon is the smallest polygon area the fill tessellator will
// triangulate. Anything flatter produces no triangles.
const areaEpsilon = 1e-12

// FillTessellator triangulates simple polygons by ear clipping.
//
// The zero value is ready to use. A FillTessellator keeps scratch buffers
// between calls and is not safe for concurrent use.
type FillTessellator struct {
	ring []int
	ids  []VertexID
}

// NewFillTessellator creates a new fill tessellator.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{}
}

// Tessellate fills the polygon described by pl and feeds the result to out.
//
// The polyline is always treated as closed. Input with fewer than three
// distinct points or with zero area produces an empty geometry and no error.
// Self-intersecting input aborts the geometry and returns ErrSelfIntersecting.
// Only simple polygons are accepted, so there is no fill rule to choose.
func (ft *FillTessellator) Tessellate(pl Polyline, out FillGeometryBuilder) error {
	pts := Polyline{Points: pl.Points, Closed: true}.cleaned()

	out.BeginGeometry()
	if len(pts) < 3 || math.Abs(signedArea(pts)) < areaEpsilon {
		out.EndGeometry()
		return nil
	}
	if selfIntersects(pts) {
		out.AbortGeometry()
		return ErrSelfIntersecting
	}

	ft.ids = ft.ids[:0]
	for _, p := range pts {
		id, err := out.AddFillVertex(p)
		if err != nil {
			out.AbortGeometry()
			return err
		}
		ft.ids = append(ft.ids, id)
	}

	if err := ft.clip(pts, out); err != nil {
		out.AbortGeometry()
		return err
	}
	out.EndGeometry()
	return nil
}

// clip runs ear clipping over pts, which must already have been emitted
// with ids in ft.ids.
func (ft *FillTessellator) clip(pts []Point, out GeometryBuilder) error {
	ring := ft.ring[:0]
	for i := range pts {
		ring = append(ring, i)
	}
	// Work counter-clockwise so that convex corners have positive orientation.
	if signedArea(pts) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	for len(ring) > 3 {
		clipped := false
		for i := range ring {
			prev := ring[(i+len(ring)-1)%len(ring)]
			cur := ring[i]
			next := ring[(i+1)%len(ring)]

			o := orient(pts[prev], pts[cur], pts[next])
			if o < 0 {
				continue
			}
			if o > 0 {
				if containsAny(pts, ring, prev, cur, next) {
					continue
				}
				out.AddTriangle(ft.ids[prev], ft.ids[cur], ft.ids[next])
			}
			// Collinear corners are dropped without a triangle.
			ring = append(ring[:i], ring[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			ft.ring = ring
			return ErrNoEar
		}
	}

	if orient(pts[ring[0]], pts[ring[1]], pts[ring[2]]) > 0 {
		out.AddTriangle(ft.ids[ring[0]], ft.ids[ring[1]], ft.ids[ring[2]])
	}
	ft.ring = ring
	return nil
}

// containsAny reports whether any ring vertex other than the triangle's own
// corners lies inside or on the counter-clockwise triangle (a, b, c).
func containsAny(pts []Point, ring []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	for _, r := range ring {
		if r == a || r == b || r == c {
			continue
		}
		p := pts[r]
		if orient(pa, pb, p) >= 0 && orient(pb, pc, p) >= 0 && orient(pc, pa, p) >= 0 {
			return true
		}
	}
	return false
}

// selfIntersects reports whether any two non-adjacent edges of the closed
// polygon pts touch or cross.
func selfIntersects(pts []Point) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(a, b, pts[j], pts[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments ab and cd share a point.
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

// onSegment reports whether p, known to be collinear with ab, lies within
// the bounding box of ab.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
