package rast

import "errors"

// Errors returned by Pipeline methods. Wrapped errors carry detail; test
// with errors.Is.
var (
	// ErrInvalidState is returned when a PipelineState fails validation.
	ErrInvalidState = errors.New("rast: invalid pipeline state")

	// ErrAttributeMismatch is returned when the vertex stage outputs of one
	// triangle do not share the same attribute slots.
	ErrAttributeMismatch = errors.New("rast: attribute layout mismatch")

	// ErrMissingPosition is returned when a vertex stage output has no
	// SlotPosition 4-vector.
	ErrMissingPosition = errors.New("rast: vertex output has no position")

	// ErrIndexOutOfRange is returned for an index outside the vertex buffer
	// or an index count that is not a multiple of 3.
	ErrIndexOutOfRange = errors.New("rast: index out of range")

	// ErrNoShaders is returned when Render runs without a vertex and a
	// pixel stage.
	ErrNoShaders = errors.New("rast: shaders not set")

	// ErrNotCleared is returned when Render or Present runs before Clear.
	ErrNotCleared = errors.New("rast: render targets not cleared")

	// ErrNothingRendered is returned when Present runs before any Render
	// since the last Clear.
	ErrNothingRendered = errors.New("rast: nothing rendered since clear")

	// ErrBufferSize is returned when a present buffer does not match
	// width * height * bytes per pixel.
	ErrBufferSize = errors.New("rast: present buffer size mismatch")
)
