package sketch

// Graphics records one frame of drawing.
//
// Context setters change the current drawing context without recording
// anything. The next shape flushes a single ContextChangedCommand holding
// the full context, so changes that are never followed by a shape cost
// nothing. Finish hands the recorded commands to a GeometryBuilder.
//
// Example:
//
//	g := sketch.NewGraphics()
//	g.Fill(sketch.Red)
//	g.NoStroke()
//	g.Translate(sketch.Pt(100, 100))
//	g.Square(sketch.Pt(0, 0), 50)
//	frame, err := sketch.NewGeometryBuilder().Build(g.Finish())
//
// A Graphics is not safe for concurrent use.
type Graphics struct {
	stack    *ContextStack
	dirty    bool
	initial  DrawContext
	commands []Command
	clear    OptionalColor
}

// NewGraphics returns a Graphics starting from DefaultContext.
func NewGraphics() *Graphics {
	return NewGraphicsFrom(DefaultContext())
}

// NewGraphicsFrom returns a Graphics starting from ctx.
func NewGraphicsFrom(ctx DrawContext) *Graphics {
	return &Graphics{
		stack:    NewContextStack(ctx),
		initial:  ctx,
		commands: make([]Command, 0, 64),
	}
}

// Context returns a copy of the current drawing context.
func (g *Graphics) Context() DrawContext {
	return g.stack.Top()
}

// StackDepth returns the number of contexts on the context stack.
func (g *Graphics) StackDepth() int {
	return g.stack.Len()
}

// Commands returns the commands recorded so far.
func (g *Graphics) Commands() []Command {
	return g.commands
}

// Finish returns the recorded commands as a CommandBuffer.
// The Graphics should not be used afterwards.
func (g *Graphics) Finish() *CommandBuffer {
	return &CommandBuffer{
		initial:  g.initial,
		commands: g.commands,
		clear:    g.clear,
	}
}

// edit returns the current context for modification and marks it dirty.
func (g *Graphics) edit() *DrawContext {
	g.dirty = true
	return g.stack.top()
}

// --------------------------------------------------------------------------
// Frame
// --------------------------------------------------------------------------

// Clear sets the color the frame is cleared with before drawing.
func (g *Graphics) Clear(c RGBA) {
	g.clear = Some(c)
}

// NoClear keeps the previous frame's contents instead of clearing.
func (g *Graphics) NoClear() {
	g.clear = OptionalColor{}
}

// --------------------------------------------------------------------------
// Context
// --------------------------------------------------------------------------

// Fill sets the fill color for subsequent shapes.
func (g *Graphics) Fill(c RGBA) {
	g.edit().Fill = Some(c)
}

// NoFill disables filling for subsequent shapes.
func (g *Graphics) NoFill() {
	g.edit().Fill = OptionalColor{}
}

// Stroke sets the outline color for subsequent shapes.
func (g *Graphics) Stroke(c RGBA) {
	g.edit().Stroke = Some(c)
}

// NoStroke disables outlines for subsequent shapes.
func (g *Graphics) NoStroke() {
	g.edit().Stroke = OptionalColor{}
}

// StrokeWeight sets the outline width. Negative and NaN widths are clamped
// to zero.
func (g *Graphics) StrokeWeight(w float64) {
	if !(w > 0) {
		w = 0
	}
	g.edit().StrokeWeight = w
}

// AnchorMode sets how shape positions are interpreted.
func (g *Graphics) AnchorMode(m AnchorMode) {
	g.edit().AnchorMode = m
}

// AngleMode sets the unit Rotate interprets its argument in.
func (g *Graphics) AngleMode(m AngleMode) {
	g.edit().AngleMode = m
}

// Rotate rotates subsequent shapes by angle, in the current angle mode.
// The rotation is applied after the transform already in effect.
func (g *Graphics) Rotate(angle float64) {
	ctx := g.edit()
	ctx.Transform = Rotate(ctx.AngleMode.Radians(angle)).Multiply(ctx.Transform)
}

// Translate moves subsequent shapes by v.
// The translation is applied after the transform already in effect.
func (g *Graphics) Translate(v Point) {
	ctx := g.edit()
	ctx.Transform = Translate(v.X, v.Y).Multiply(ctx.Transform)
}

// Save pushes a copy of the current context. It records nothing.
func (g *Graphics) Save() {
	g.stack.Push()
}

// Restore returns to the context in effect at the matching Save.
// Without a matching Save it does nothing.
func (g *Graphics) Restore() {
	if g.stack.Pop() {
		g.dirty = true
	}
}

// Push is an alias for Save.
func (g *Graphics) Push() {
	g.Save()
}

// Pop is an alias for Restore.
func (g *Graphics) Pop() {
	g.Restore()
}

// Scoped runs fn against a copy of g. Shapes fn draws are appended to g in
// order, but context changes fn makes do not outlive the call.
func (g *Graphics) Scoped(fn func(g *Graphics)) {
	child := &Graphics{
		stack:   g.stack.clone(),
		dirty:   g.dirty,
		initial: g.stack.Top(),
		clear:   g.clear,
	}

	fn(child)

	g.commands = append(g.commands, child.commands...)
	g.flushContext()
}

// --------------------------------------------------------------------------
// Shapes
// --------------------------------------------------------------------------

// Rect draws an axis-aligned rectangle with its anchor at position.
func (g *Graphics) Rect(position, size Point) {
	pts := []Point{
		position,
		position.Add(Pt(size.X, 0)),
		position.Add(size),
		position.Add(Pt(0, size.Y)),
	}
	box := BoundingBox{Min: position, Max: position.Add(size)}
	g.draw(pts, true, &box)
}

// Square draws a square with sides of length side.
func (g *Graphics) Square(position Point, side float64) {
	g.Rect(position, Pt(side, side))
}

// draw records a shape, flushing the context first if it changed.
func (g *Graphics) draw(pts []Point, closed bool, box *BoundingBox) {
	if g.dirty {
		g.flushContext()
	}
	ctx := g.stack.top()
	g.commands = append(g.commands, DrawShapeCommand{
		Closed: closed,
		Points: alignPoints(pts, ctx.AnchorMode, box),
	})
}

// flushContext records the current context and clears the dirty flag.
func (g *Graphics) flushContext() {
	g.commands = append(g.commands, ContextChangedCommand{Context: g.stack.Top()})
	g.dirty = false
}

