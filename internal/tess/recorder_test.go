package tess

// recorder is an in-memory FillGeometryBuilder and StrokeGeometryBuilder.
type recorder struct {
	verts []Point
	tris  [][3]VertexID

	begun, ended, aborted int

	// limit caps the number of vertices accepted; zero means unlimited.
	limit int

	vertStart, triStart int
}

func (r *recorder) BeginGeometry() {
	r.begun++
	r.vertStart = len(r.verts)
	r.triStart = len(r.tris)
}

func (r *recorder) EndGeometry() Count {
	r.ended++
	return Count{
		Vertices: uint32(len(r.verts) - r.vertStart),
		Indices:  uint32(3 * (len(r.tris) - r.triStart)),
	}
}

func (r *recorder) AbortGeometry() {
	r.aborted++
	r.verts = r.verts[:r.vertStart]
	r.tris = r.tris[:r.triStart]
}

func (r *recorder) AddTriangle(a, b, c VertexID) {
	r.tris = append(r.tris, [3]VertexID{a, b, c})
}

func (r *recorder) add(p Point) (VertexID, error) {
	if r.limit > 0 && len(r.verts) >= r.limit {
		return 0, ErrTooManyVertices
	}
	r.verts = append(r.verts, p)
	return VertexID(len(r.verts) - 1 - r.vertStart), nil
}

func (r *recorder) AddFillVertex(p Point) (VertexID, error)   { return r.add(p) }
func (r *recorder) AddStrokeVertex(p Point) (VertexID, error) { return r.add(p) }

// triangle returns the corners of the i-th recorded triangle.
func (r *recorder) triangle(i int) (a, b, c Point) {
	t := r.tris[i]
	base := r.vertStart
	return r.verts[base+int(t[0])], r.verts[base+int(t[1])], r.verts[base+int(t[2])]
}

// area returns the summed signed area of all recorded triangles.
func (r *recorder) area() float64 {
	var sum float64
	for i := range r.tris {
		a, b, c := r.triangle(i)
		sum += orient(a, b, c) / 2
	}
	return sum
}

// allPositive reports whether every triangle has positive signed area.
func (r *recorder) allPositive() bool {
	for i := range r.tris {
		a, b, c := r.triangle(i)
		if orient(a, b, c) <= 0 {
			return false
		}
	}
	return true
}
