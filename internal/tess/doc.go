// Package tess turns polylines into indexed triangle meshes.
//
// Two tessellators are provided:
//
//   - FillTessellator: ear clipping over a simple polygon. The polyline is
//     treated as implicitly closed. Self-intersecting input is rejected.
//   - StrokeTessellator: emits one quad per segment, a join wedge at every
//     interior vertex and a cap at each end of an open polyline.
//
// Neither tessellator owns output storage. Vertices and triangles are pushed
// into a GeometryBuilder supplied by the caller, bracketed by BeginGeometry and
// EndGeometry. When emission fails partway through a shape the tessellator
// calls AbortGeometry so the builder can roll back to the state it had before
// the shape began, and returns the error.
//
// Vertex ids handed to AddTriangle are local to the current geometry: the
// first vertex accepted after BeginGeometry is id 0.
//
// # Usage
//
//	var fill tess.FillTessellator
//	poly := tess.Polyline{Points: pts, Closed: true}
//	if err := fill.Tessellate(poly, out); err != nil {
//	    return err
//	}
//
// Every emitted triangle has positive signed area (counter-clockwise with the
// y axis pointing up, clockwise on a y-down screen).
package tess
