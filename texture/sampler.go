package texture

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/vecmath"
)

// AddressMode defines how coordinates outside [0, 1] are mapped back into
// the texture.
type AddressMode uint8

const (
	// AddressRepeat tiles the texture: u and u+1 sample the same texel.
	AddressRepeat AddressMode = iota

	// AddressMirroredRepeat tiles the texture, reflecting every other copy.
	AddressMirroredRepeat

	// AddressClampToEdge saturates coordinates, extending the edge texels.
	AddressClampToEdge

	// AddressClampToBorder returns the border color outside [0, 1].
	AddressClampToBorder
)

// String returns a string representation of the address mode.
func (m AddressMode) String() string {
	switch m {
	case AddressRepeat:
		return "Repeat"
	case AddressMirroredRepeat:
		return "MirroredRepeat"
	case AddressClampToEdge:
		return "ClampToEdge"
	case AddressClampToBorder:
		return "ClampToBorder"
	default:
		return "Unknown"
	}
}

// FilterMode defines how texels are combined inside one mip level.
type FilterMode uint8

const (
	// FilterNearest selects the texel containing the coordinate.
	FilterNearest FilterMode = iota

	// FilterBilinear blends the 4 texels around the coordinate.
	FilterBilinear

	// FilterAnisotropic takes several bilinear samples along the major
	// axis of the pixel footprint. It ignores the sampler's MipMode and
	// always blends two mip levels.
	FilterAnisotropic
)

// String returns a string representation of the filter mode.
func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "Nearest"
	case FilterBilinear:
		return "Bilinear"
	case FilterAnisotropic:
		return "Anisotropic"
	default:
		return "Unknown"
	}
}

// MipMode defines how a mip level is chosen from the pixel footprint.
type MipMode uint8

const (
	// MipNone always samples level 0.
	MipNone MipMode = iota

	// MipNearest samples the single closest level.
	MipNearest

	// MipLinear blends the two levels bracketing the footprint.
	MipLinear
)

// String returns a string representation of the mip mode.
func (m MipMode) String() string {
	switch m {
	case MipNone:
		return "None"
	case MipNearest:
		return "Nearest"
	case MipLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// DefaultMaxAnisotropy is the sample bound used when Config leaves it unset.
const DefaultMaxAnisotropy = 16

// Config describes a sampler.
type Config struct {
	Address AddressMode
	Filter  FilterMode
	Mip     MipMode

	// Border is returned for coordinates outside [0, 1] with
	// AddressClampToBorder.
	Border f32.Vec4

	// MaxAnisotropy bounds the number of samples taken by
	// FilterAnisotropic. Zero means DefaultMaxAnisotropy.
	MaxAnisotropy int
}

// DefaultConfig returns clamp-to-border with a transparent black border,
// nearest filtering and no mipmapping.
func DefaultConfig() Config {
	return Config{
		Address: AddressClampToBorder,
		Filter:  FilterNearest,
		Mip:     MipNone,
	}
}

// Sampler filters texels out of a Texture. A Sampler is immutable and safe
// for concurrent use.
type Sampler struct {
	cfg Config
}

// NewSampler creates a sampler from c.
func NewSampler(c Config) *Sampler {
	if c.MaxAnisotropy <= 0 {
		c.MaxAnisotropy = DefaultMaxAnisotropy
	}
	return &Sampler{cfg: c}
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config { return s.cfg }

// Sample returns the filtered color of tex at uv.
//
// ddx and ddy are the screen-space derivatives of uv along x and y. They
// only matter for mipmapped and anisotropic sampling.
func (s *Sampler) Sample(tex *Texture, uv, ddx, ddy f32.Vec2) f32.Vec4 {
	if s.cfg.Address == AddressClampToBorder && outside(uv) {
		return s.cfg.Border
	}
	if s.cfg.Filter == FilterAnisotropic {
		return s.sampleAnisotropic(tex, uv, ddx, ddy)
	}

	st := f32.Vec2{s.wrap(uv[0]), s.wrap(uv[1])}
	if s.cfg.Mip == MipNone || tex.MaxLevel() == 0 {
		return s.sampleLevel(tex, st, 0)
	}

	scale := mipScale(tex, ddx, ddy)
	switch s.cfg.Mip {
	case MipNearest:
		return s.sampleLevel(tex, st, int(math32.Min(math32.Round(scale), float32(tex.MaxLevel()))))
	default:
		return s.sampleLevels(tex, st, scale, s.sampleLevel)
	}
}

// sampleLevel filters one mip level with the configured in-level filter.
func (s *Sampler) sampleLevel(tex *Texture, st f32.Vec2, n int) f32.Vec4 {
	if s.cfg.Filter == FilterNearest {
		return nearest(tex, st, n)
	}
	return bilinear(tex, st, n, s.cfg.Address == AddressRepeat)
}

// sampleLevels blends the two levels bracketing lod.
func (s *Sampler) sampleLevels(tex *Texture, st f32.Vec2, lod float32,
	fn func(*Texture, f32.Vec2, int) f32.Vec4) f32.Vec4 {
	if lod <= 0 {
		return fn(tex, st, 0)
	}
	if lod >= float32(tex.MaxLevel()) {
		return fn(tex, st, tex.MaxLevel())
	}
	lo := int(lod)
	return vecmath.Lerp4(fn(tex, st, lo), fn(tex, st, lo+1), lod-float32(lo))
}

// wrap maps one coordinate into [0, 1] according to the address mode.
// Clamp-to-border coordinates reaching here are already inside.
func (s *Sampler) wrap(u float32) float32 {
	switch s.cfg.Address {
	case AddressRepeat:
		u = math32.Mod(u, 1)
		if u < 0 {
			u++
		}
		if u >= 1 {
			u = 0
		}
		return u
	case AddressMirroredRepeat:
		return 1 - math32.Abs(math32.Mod(math32.Abs(u), 2)-1)
	default:
		return vecmath.Clamp(u, 0, 1)
	}
}

// mipScale returns the mip level selected by the uv derivatives: the
// larger of the x derivative of u and the y derivative of v, in level 0
// texels. Each unit of scale is one level.
func mipScale(tex *Texture, ddx, ddy f32.Vec2) float32 {
	scale := math32.Max(ddx[0]*float32(tex.Width()), ddy[1]*float32(tex.Height()))
	if !(scale > 0) {
		return 0
	}
	return scale
}

// lodOf converts a footprint in texels to a mip level. Footprints of one
// texel or less magnify and map to level 0.
func lodOf(footprint float32) float32 {
	if !(footprint > 1) {
		return 0
	}
	return math32.Log2(footprint)
}

func outside(uv f32.Vec2) bool {
	return uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1
}
