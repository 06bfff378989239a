package sketch

import (
	"fmt"
	"math"
)

// AngleMode selects the unit Graphics.Rotate interprets its argument in.
type AngleMode int

const (
	// AngleRadians interprets angles as radians.
	AngleRadians AngleMode = iota
	// AngleDegrees interprets angles as degrees.
	AngleDegrees
)

// String returns the name of the angle mode.
func (m AngleMode) String() string {
	switch m {
	case AngleRadians:
		return "radians"
	case AngleDegrees:
		return "degrees"
	default:
		return fmt.Sprintf("AngleMode(%d)", int(m))
	}
}

// Radians converts angle, expressed in this mode, to radians.
func (m AngleMode) Radians(angle float64) float64 {
	if m == AngleDegrees {
		return angle * math.Pi / 180
	}
	return angle
}

// DrawContext is the drawing state in effect for a shape.
//
// DrawContext is a plain value. Recording a ContextChangedCommand stores a
// copy, so later changes never reach commands already recorded.
type DrawContext struct {
	// Transform maps shape coordinates to output coordinates.
	Transform Matrix

	// Fill is the fill color. Shapes are not filled when absent.
	Fill OptionalColor

	// Stroke is the outline color. Shapes are not outlined when absent.
	Stroke OptionalColor

	// StrokeWeight is the outline width. It is only used while Stroke is set.
	StrokeWeight float64

	// AnchorMode decides whether a shape is placed by its first point or
	// by the center of its bounding box.
	AnchorMode AnchorMode

	// AngleMode is the unit Rotate reads its angle in.
	AngleMode AngleMode
}

// DefaultContext returns the context every Graphics starts with: identity
// transform, black fill and stroke, stroke weight 1, centered anchoring and
// angles in radians.
func DefaultContext() DrawContext {
	return DrawContext{
		Transform:    Identity(),
		Fill:         Some(Black),
		Stroke:       Some(Black),
		StrokeWeight: 1,
		AnchorMode:   AnchorCenter,
		AngleMode:    AngleRadians,
	}
}

// ContextStack is a non-empty stack of drawing contexts. The top of the
// stack is the context currently being edited.
type ContextStack struct {
	items []DrawContext
}

// NewContextStack returns a stack holding only base.
func NewContextStack(base DrawContext) *ContextStack {
	return &ContextStack{items: []DrawContext{base}}
}

// Top returns a copy of the current context.
func (s *ContextStack) Top() DrawContext {
	return s.items[len(s.items)-1]
}

// top returns the current context for in-place modification.
func (s *ContextStack) top() *DrawContext {
	return &s.items[len(s.items)-1]
}

// Push duplicates the current context and makes the copy current.
func (s *ContextStack) Push() {
	s.items = append(s.items, s.Top())
}

// Pop discards the current context. It reports false and leaves the stack
// unchanged when only one context remains.
func (s *ContextStack) Pop() bool {
	if len(s.items) <= 1 {
		return false
	}
	s.items = s.items[:len(s.items)-1]
	return true
}

// Len returns the number of contexts on the stack. It is never less than 1.
func (s *ContextStack) Len() int {
	return len(s.items)
}

// clone returns an independent copy of the stack.
func (s *ContextStack) clone() *ContextStack {
	items := make([]DrawContext, len(s.items))
	copy(items, s.items)
	return &ContextStack{items: items}
}
