package rast

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/texture"
)

// Uniforms holds the per-draw constants shared by every vertex and pixel:
// plain attributes, named samplers and the bound textures.
//
// Stages only read Uniforms while a Render runs.
type Uniforms struct {
	AttributeSet

	Samplers map[string]*texture.Sampler
	Textures []*texture.Texture
}

// NewUniforms returns empty uniforms.
func NewUniforms() *Uniforms {
	return &Uniforms{Samplers: make(map[string]*texture.Sampler)}
}

// SetSampler registers a sampler under name.
func (u *Uniforms) SetSampler(name string, s *texture.Sampler) {
	if u.Samplers == nil {
		u.Samplers = make(map[string]*texture.Sampler)
	}
	u.Samplers[name] = s
}

// BindTexture appends a texture and returns its index.
func (u *Uniforms) BindTexture(t *texture.Texture) int {
	u.Textures = append(u.Textures, t)
	return len(u.Textures) - 1
}

// Sample samples texture texIdx with the sampler called name at the SlotUV
// of a pixel input, using its SlotDdxUV and SlotDdyUV derivatives.
// An unknown sampler or texture yields transparent black.
func (u *Uniforms) Sample(name string, texIdx int, in AttributeSet) f32.Vec4 {
	if u == nil {
		return f32.Vec4{}
	}
	s := u.Samplers[name]
	if s == nil || texIdx < 0 || texIdx >= len(u.Textures) || u.Textures[texIdx] == nil {
		return f32.Vec4{}
	}
	uv, _ := in.Vec2(SlotUV)
	ddx, _ := in.Vec2(SlotDdxUV)
	ddy, _ := in.Vec2(SlotDdyUV)
	return s.Sample(u.Textures[texIdx], uv, ddx, ddy)
}
