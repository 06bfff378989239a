package sketch

import (
	"fmt"

	"github.com/gogpu/sketch/internal/tess"
)

// Errors reported through TessellationError.
var (
	// ErrIndexOverflow means a shape would need a vertex index beyond the
	// builder's limit.
	ErrIndexOverflow = tess.ErrTooManyVertices

	// ErrInvalidVertex means a pass emitted a vertex while its color was
	// absent from the context.
	ErrInvalidVertex = tess.ErrInvalidVertex

	// ErrSelfIntersecting means a filled shape's outline crosses itself.
	ErrSelfIntersecting = tess.ErrSelfIntersecting

	// ErrDegenerate means a filled shape could not be triangulated.
	ErrDegenerate = tess.ErrNoEar
)

// TessellationError reports the command and pass that failed while
// building a frame.
type TessellationError struct {
	Command int
	Pass    Pass
	Err     error
}

func (e *TessellationError) Error() string {
	return fmt.Sprintf("sketch: command %d: %s pass: %v", e.Command, e.Pass, e.Err)
}

// Unwrap returns the underlying tessellation error.
func (e *TessellationError) Unwrap() error {
	return e.Err
}
