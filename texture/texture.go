// Package texture provides mip-mapped float textures and the samplers that
// filter them for rast pixel stages.
//
// Texel coordinates have their origin at the top-left texel. Normalized
// coordinates (u, v) span [0, 1] across the whole image.
package texture

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/math/f32"
)

// Common errors for texture construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrDataTooSmall is returned when fewer texels than width*height are given.
	ErrDataTooSmall = errors.New("texture: texel data too small")
)

// AllLevels requests every mip level the texture dimensions allow.
const AllLevels = -1

// level locates one mip level inside the texel slice.
type level struct {
	offset int
	width  int
	height int
}

// Texture is a 2D array of RGBA texels with a pre-computed mip chain.
//
// Level 0 is the full-resolution image. Level k is half the size of level
// k-1 in both dimensions, each texel being the box-filtered average of the
// 2x2 block above it. All levels live in one contiguous slice.
//
// A level is only produced when both dimensions of its parent are even, so
// the chain of a 12x8 texture stops at 3x2 (levels 0, 1 and 2).
//
// Thread safety: a Texture is safe for concurrent reads. Set and
// GenerateMipmaps require external synchronization.
type Texture struct {
	data   []f32.Vec4
	levels []level
	// requested is the max level asked for at construction, before clamping.
	requested int
}

// New creates a texture filled with c. maxLevel is the highest mip level to
// generate; 0 disables mipmapping and AllLevels generates as many as the
// dimensions allow. The level actually generated may be lower, see MaxLevel.
func New(width, height int, c f32.Vec4, maxLevel int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	t := newTexture(width, height, maxLevel)
	for i := range t.data {
		t.data[i] = c
	}
	return t, nil
}

// FromTexels creates a texture from row-major level 0 texels and generates
// its mip chain. The texels are copied.
func FromTexels(width, height int, texels []f32.Vec4, maxLevel int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(texels) < width*height {
		return nil, ErrDataTooSmall
	}
	t := newTexture(width, height, maxLevel)
	copy(t.data, texels[:width*height])
	t.GenerateMipmaps()
	return t, nil
}

// FromImage converts an in-memory image into a texture with components in
// [0, 1] and straight (non-premultiplied) alpha.
func FromImage(img image.Image, maxLevel int) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidDimensions
	}
	t := newTexture(b.Dx(), b.Dy(), maxLevel)
	const inv255 = float32(1.0 / 255.0)
	for y := range b.Dy() {
		for x := range b.Dx() {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.data[y*b.Dx()+x] = f32.Vec4{
				float32(c.R) * inv255,
				float32(c.G) * inv255,
				float32(c.B) * inv255,
				float32(c.A) * inv255,
			}
		}
	}
	t.GenerateMipmaps()
	return t, nil
}

func newTexture(width, height, maxLevel int) *Texture {
	n := clampLevels(width, height, maxLevel)
	levels := make([]level, n+1)
	size := 0
	for k := range levels {
		levels[k] = level{offset: size, width: width >> k, height: height >> k}
		size += levels[k].width * levels[k].height
	}
	return &Texture{
		data:      make([]f32.Vec4, size),
		levels:    levels,
		requested: maxLevel,
	}
}

// MaxPossibleLevel returns the highest mip level a width x height texture
// can hold: each generated level needs even dimensions in its parent.
func MaxPossibleLevel(width, height int) int {
	n := 0
	for width > 0 && height > 0 && (width>>n)&1 == 0 && (height>>n)&1 == 0 {
		n++
	}
	return n
}

func clampLevels(width, height, maxLevel int) int {
	possible := MaxPossibleLevel(width, height)
	if maxLevel < 0 || maxLevel > possible {
		return possible
	}
	return maxLevel
}

// Width returns the level 0 width in texels.
func (t *Texture) Width() int { return t.levels[0].width }

// Height returns the level 0 height in texels.
func (t *Texture) Height() int { return t.levels[0].height }

// MaxLevel returns the highest generated mip level.
func (t *Texture) MaxLevel() int { return len(t.levels) - 1 }

// RequestedLevel returns the max level requested at construction.
// It differs from MaxLevel when the dimensions forced a shorter chain.
func (t *Texture) RequestedLevel() int { return t.requested }

// LevelSize returns the dimensions of mip level n, clamped to the chain.
func (t *Texture) LevelSize(n int) (width, height int) {
	l := t.levels[t.clampLevel(n)]
	return l.width, l.height
}

// At returns the texel at (x, y) of mip level n.
// The level is clamped to [0, MaxLevel] and the coordinates to the level.
func (t *Texture) At(x, y, n int) f32.Vec4 {
	l := t.levels[t.clampLevel(n)]
	x = clampInt(x, 0, l.width-1)
	y = clampInt(y, 0, l.height-1)
	return t.data[l.offset+y*l.width+x]
}

// Set writes the level 0 texel at (x, y). Out of range coordinates are
// ignored. Call GenerateMipmaps afterwards to refresh the chain.
func (t *Texture) Set(x, y int, c f32.Vec4) {
	l := t.levels[0]
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	t.data[y*l.width+x] = c
}

// GenerateMipmaps rebuilds levels 1..MaxLevel from level 0 using a 2x2 box
// filter.
func (t *Texture) GenerateMipmaps() {
	for k := 1; k < len(t.levels); k++ {
		src := t.levels[k-1]
		dst := t.levels[k]
		for y := range dst.height {
			for x := range dst.width {
				s := src.offset + 2*y*src.width + 2*x
				var sum f32.Vec4
				for i := range sum {
					sum[i] = t.data[s][i] + t.data[s+1][i] +
						t.data[s+src.width][i] + t.data[s+src.width+1][i]
				}
				for i := range sum {
					sum[i] *= 0.25
				}
				t.data[dst.offset+y*dst.width+x] = sum
			}
		}
	}
}

func (t *Texture) clampLevel(n int) int {
	return clampInt(n, 0, len(t.levels)-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
