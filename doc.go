// Package sketch provides an immediate-mode drawing API for creative coding.
//
// # Overview
//
// A sketch draws each frame from scratch. The draw callback records shapes
// and drawing-state changes on a Graphics; at the end of the frame a
// GeometryBuilder replays the recording and tessellates it into a single
// triangle mesh that a renderer uploads and draws.
//
// # Quick Start
//
//	g := sketch.NewGraphics()
//	g.Clear(sketch.White)
//	g.AnchorMode(sketch.AnchorCenter)
//	g.Fill(sketch.Red)
//	g.Stroke(sketch.Black)
//	g.StrokeWeight(2)
//	g.Square(sketch.Pt(100, 100), 40)
//
//	frame, err := sketch.NewGeometryBuilder().Build(g.Finish())
//	if err != nil {
//	    // skip this frame
//	}
//
// The app package runs a draw callback in a window, and the render package
// draws frames on the CPU or through gogpu/wgpu.
//
// # Drawing State
//
// The drawing context holds the transform, fill and stroke colors, stroke
// weight, anchor mode and angle mode. Save and Restore (or Push and Pop)
// bracket changes; Scoped does the same around a callback. A shape always
// uses the context in effect when it was drawn, however the context changes
// afterwards.
//
// # Coordinate System
//
// Points are transformed by the context transform and handed to the
// renderer unchanged. The renderers in this module map (0,0) to the top-left
// corner of the target with X increasing right and Y increasing down.
// Rotate takes radians unless the angle mode is AngleDegrees.
//
// # Output
//
// A Frame holds one vertex list and one uint32 index list for all shapes.
// Each shape contributes its fill triangles, then its stroke triangles;
// Frame.Spans names the ranges. If any shape cannot be tessellated, Build
// fails and no partial frame is produced.
package sketch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
