package rast

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/vecmath"
)

// MaxSamples is the largest supported sample count, the width of a pixel
// coverage mask.
const MaxSamples = 32

// CullMode selects which triangle winding is discarded before
// rasterization. Counter-clockwise triangles in NDC face the viewer.
type CullMode uint8

const (
	// CullNone rasterizes both windings.
	CullNone CullMode = iota

	// CullBack discards clockwise triangles.
	CullBack

	// CullFront discards counter-clockwise triangles.
	CullFront
)

// String returns a string representation of the cull mode.
func (m CullMode) String() string {
	switch m {
	case CullNone:
		return "None"
	case CullBack:
		return "Back"
	case CullFront:
		return "Front"
	default:
		return unknownStr
	}
}

const unknownStr = "Unknown"

// PipelineState is the render configuration of a Pipeline.
type PipelineState struct {
	// Width and Height are the render target size in pixels.
	Width, Height int

	// FOV is the vertical field of view in degrees used by Projection.
	FOV float32

	// Near and Far bound the clip-space w of visible geometry.
	Near, Far float32

	// SampleOffsets are the sample positions inside a pixel, each in
	// [0, 1]². Their count is the MSAA sample count.
	SampleOffsets []f32.Vec2

	// DepthTest enables the per-sample depth comparison.
	DepthTest bool

	// DepthCompare passes a sample when compare(new, stored) holds.
	// CompareFunctionUndefined means CompareFunctionLess.
	DepthCompare gputypes.CompareFunction

	// CullMode discards triangles by winding.
	CullMode CullMode
}

// DefaultState returns an 800x600 single-sample state with depth testing.
func DefaultState() PipelineState {
	return PipelineState{
		Width:         800,
		Height:        600,
		FOV:           90,
		Near:          0.1,
		Far:           64,
		SampleOffsets: Pattern1x(),
		DepthTest:     true,
		DepthCompare:  gputypes.CompareFunctionLess,
	}
}

// Pattern1x returns a single sample at the pixel center.
func Pattern1x() []f32.Vec2 {
	return []f32.Vec2{{0.5, 0.5}}
}

// Pattern4x returns a 2x2 ordered grid.
func Pattern4x() []f32.Vec2 {
	return []f32.Vec2{
		{0.25, 0.25},
		{0.25, 0.75},
		{0.75, 0.25},
		{0.75, 0.75},
	}
}

// Pattern16x returns a 4x4 ordered grid.
func Pattern16x() []f32.Vec2 {
	steps := [4]float32{0.125, 0.375, 0.625, 0.875}
	offsets := make([]f32.Vec2, 0, 16)
	for _, x := range steps {
		for _, y := range steps {
			offsets = append(offsets, f32.Vec2{x, y})
		}
	}
	return offsets
}

// SampleCount returns the number of samples per pixel.
func (s *PipelineState) SampleCount() int {
	return len(s.SampleOffsets)
}

// Aspect returns Width / Height.
func (s *PipelineState) Aspect() float32 {
	if s.Height == 0 {
		return 0
	}
	return float32(s.Width) / float32(s.Height)
}

// Projection returns the perspective matrix for FOV, Aspect, Near and Far.
func (s *PipelineState) Projection() f32.Mat4 {
	return vecmath.Perspective(s.FOV, s.Aspect(), s.Near, s.Far)
}

// Validate reports whether the state can drive a pipeline.
func (s *PipelineState) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidState, s.Width, s.Height)
	}
	if n := len(s.SampleOffsets); n == 0 || n > MaxSamples {
		return fmt.Errorf("%w: %d samples, want 1..%d", ErrInvalidState, n, MaxSamples)
	}
	for i, o := range s.SampleOffsets {
		if !(o[0] >= 0 && o[0] <= 1 && o[1] >= 0 && o[1] <= 1) {
			return fmt.Errorf("%w: sample %d offset %v outside [0, 1]", ErrInvalidState, i, o)
		}
	}
	if !(s.Near > 0 && s.Near < s.Far) {
		return fmt.Errorf("%w: near %g, far %g", ErrInvalidState, s.Near, s.Far)
	}
	if !(s.FOV > 0 && s.FOV < 180) {
		return fmt.Errorf("%w: fov %g", ErrInvalidState, s.FOV)
	}
	if s.CullMode > CullFront {
		return fmt.Errorf("%w: cull mode %d", ErrInvalidState, s.CullMode)
	}
	if s.DepthCompare > gputypes.CompareFunctionAlways {
		return fmt.Errorf("%w: depth compare %d", ErrInvalidState, s.DepthCompare)
	}
	return nil
}

// clone returns a copy that does not share SampleOffsets with s.
func (s PipelineState) clone() PipelineState {
	s.SampleOffsets = append([]f32.Vec2(nil), s.SampleOffsets...)
	return s
}

// depthPasses applies the depth comparison to a new and a stored depth.
func (s *PipelineState) depthPasses(d, stored float32) bool {
	switch s.DepthCompare {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionEqual:
		return d == stored
	case gputypes.CompareFunctionLessEqual:
		return d <= stored
	case gputypes.CompareFunctionGreater:
		return d > stored
	case gputypes.CompareFunctionNotEqual:
		return d != stored
	case gputypes.CompareFunctionGreaterEqual:
		return d >= stored
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return d < stored
	}
}
