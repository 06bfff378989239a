package sketch

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdDrawShape      CommandType = iota // Tessellate a polyline
	CmdContextChanged                    // Replace the current drawing context
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdDrawShape:      "DrawShape",
	CmdContextChanged: "ContextChanged",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// DrawShapeCommand requests tessellation of a polyline with the drawing
// context in effect at this point of the buffer.
type DrawShapeCommand struct {
	// Closed joins the last point back to the first when stroking.
	// Fills are always closed.
	Closed bool
	// Points are the anchor-adjusted shape points, before transformation.
	Points []Point
}

// Type implements Command.
func (DrawShapeCommand) Type() CommandType { return CmdDrawShape }

// ContextChangedCommand makes Context the current drawing context for the
// commands that follow.
type ContextChangedCommand struct {
	Context DrawContext
}

// Type implements Command.
func (ContextChangedCommand) Type() CommandType { return CmdContextChanged }

// CommandBuffer is the ordered log of one frame's drawing commands.
//
// Initial is the context in effect before the first command. Commands are
// only ever appended; a GeometryBuilder replays them in order.
type CommandBuffer struct {
	initial  DrawContext
	commands []Command
	clear    OptionalColor
}

// NewCommandBuffer returns an empty buffer that starts in initial.
func NewCommandBuffer(initial DrawContext) *CommandBuffer {
	return &CommandBuffer{initial: initial}
}

// Append adds cmd to the end of the buffer.
func (b *CommandBuffer) Append(cmd Command) {
	b.commands = append(b.commands, cmd)
}

// SetClear sets the color the frame is cleared with before drawing.
// An absent color keeps the previous frame's contents.
func (b *CommandBuffer) SetClear(c OptionalColor) {
	b.clear = c
}

// Initial returns the context in effect before the first command.
func (b *CommandBuffer) Initial() DrawContext {
	return b.initial
}

// Commands returns the recorded commands in order.
func (b *CommandBuffer) Commands() []Command {
	return b.commands
}

// Clear returns the frame clear color.
func (b *CommandBuffer) Clear() OptionalColor {
	return b.clear
}

// Len returns the number of recorded commands.
func (b *CommandBuffer) Len() int {
	return len(b.commands)
}
