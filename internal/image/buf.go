package image

import (
	"errors"

	"golang.org/x/image/math/f32"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when a destination buffer is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrSizeMismatch is returned when two planes of different sizes are combined.
	ErrSizeMismatch = errors.New("image: plane size mismatch")
)

// ColorPlane is a width x height array of RGBA float colors, row-major with
// row 0 at the top.
//
// Thread safety: ColorPlane is safe for concurrent read access. Writers to
// disjoint pixels may run concurrently; anything else requires external
// synchronization.
type ColorPlane struct {
	pix    []f32.Vec4
	width  int
	height int
}

// NewColorPlane creates a zeroed color plane.
func NewColorPlane(width, height int) (*ColorPlane, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ColorPlane{
		pix:    make([]f32.Vec4, width*height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the plane width.
func (p *ColorPlane) Width() int { return p.width }

// Height returns the plane height.
func (p *ColorPlane) Height() int { return p.height }

// Bounds returns the plane dimensions.
func (p *ColorPlane) Bounds() (int, int) { return p.width, p.height }

// Pix returns the underlying row-major slice.
func (p *ColorPlane) Pix() []f32.Vec4 { return p.pix }

// At returns the color at (x, y). Out of range coordinates return zero.
func (p *ColorPlane) At(x, y int) f32.Vec4 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return f32.Vec4{}
	}
	return p.pix[y*p.width+x]
}

// Set writes the color at (x, y). Out of range coordinates are ignored.
func (p *ColorPlane) Set(x, y int, c f32.Vec4) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.pix[y*p.width+x] = c
}

// Fill sets every pixel to c.
func (p *ColorPlane) Fill(c f32.Vec4) {
	for i := range p.pix {
		p.pix[i] = c
	}
}

// Clear zeroes every pixel.
func (p *ColorPlane) Clear() {
	clear(p.pix)
}

// DepthPlane is a width x height array of float32 depths.
// Same layout and thread safety rules as ColorPlane.
type DepthPlane struct {
	pix    []float32
	width  int
	height int
}

// NewDepthPlane creates a zeroed depth plane.
func NewDepthPlane(width, height int) (*DepthPlane, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &DepthPlane{
		pix:    make([]float32, width*height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the plane width.
func (p *DepthPlane) Width() int { return p.width }

// Height returns the plane height.
func (p *DepthPlane) Height() int { return p.height }

// Bounds returns the plane dimensions.
func (p *DepthPlane) Bounds() (int, int) { return p.width, p.height }

// Pix returns the underlying row-major slice.
func (p *DepthPlane) Pix() []float32 { return p.pix }

// At returns the depth at (x, y). Out of range coordinates return zero.
func (p *DepthPlane) At(x, y int) float32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.pix[y*p.width+x]
}

// Set writes the depth at (x, y). Out of range coordinates are ignored.
func (p *DepthPlane) Set(x, y int, d float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.pix[y*p.width+x] = d
}

// Fill sets every pixel to d.
func (p *DepthPlane) Fill(d float32) {
	for i := range p.pix {
		p.pix[i] = d
	}
}

// Clear zeroes every pixel.
func (p *DepthPlane) Clear() {
	clear(p.pix)
}
