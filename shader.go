package rast

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/vecmath"
)

// VertexStage transforms one vertex. It must write a clip-space
// SlotPosition 4-vector into out and may add any other attributes; out is
// empty on entry.
type VertexStage interface {
	Vertex(in AttributeSet, out *AttributeSet, u *Uniforms, s *PipelineState)
}

// PixelStage computes the color of one pixel from interpolated attributes.
//
// The input SlotPosition holds the NDC x and y of the shaded point, its
// depth and its clip-space w. SlotDdxUV and SlotDdyUV are set when the
// input carries SlotUV.
type PixelStage interface {
	Pixel(in AttributeSet, u *Uniforms, s *PipelineState) f32.Vec4
}

// VertexFunc adapts a function to VertexStage.
type VertexFunc func(in AttributeSet, out *AttributeSet, u *Uniforms, s *PipelineState)

// Vertex calls f(in, out, u, s).
func (f VertexFunc) Vertex(in AttributeSet, out *AttributeSet, u *Uniforms, s *PipelineState) {
	f(in, out, u, s)
}

// PixelFunc adapts a function to PixelStage.
type PixelFunc func(in AttributeSet, u *Uniforms, s *PipelineState) f32.Vec4

// Pixel returns f(in, u, s).
func (f PixelFunc) Pixel(in AttributeSet, u *Uniforms, s *PipelineState) f32.Vec4 {
	return f(in, u, s)
}

// PassThrough copies every input attribute to the output. Input positions
// are taken as clip space.
var PassThrough VertexStage = VertexFunc(func(in AttributeSet, out *AttributeSet, _ *Uniforms, _ *PipelineState) {
	*out = in.Clone()
})

// Transform copies every input attribute and multiplies the position by
// the SlotTransform matrix of the uniforms. Without a matrix the position
// is copied unchanged.
var Transform VertexStage = VertexFunc(func(in AttributeSet, out *AttributeSet, u *Uniforms, _ *PipelineState) {
	*out = in.Clone()
	pos, ok := in.Position()
	if !ok || u == nil {
		return
	}
	if m, ok := u.Mat4(SlotTransform); ok {
		out.SetVec4(SlotPosition, vecmath.MulMV(m, pos))
	}
})

// VertexColor returns the SlotColor attribute: a 4-vector as is, a 3-vector
// with alpha 1. Inputs without a color are white.
var VertexColor PixelStage = PixelFunc(func(in AttributeSet, _ *Uniforms, _ *PipelineState) f32.Vec4 {
	return colorOf(in)
})

func colorOf(in AttributeSet) f32.Vec4 {
	if c, ok := in.Vec4(SlotColor); ok {
		return c
	}
	if c, ok := in.Vec3(SlotColor); ok {
		return f32.Vec4{c[0], c[1], c[2], 1}
	}
	return f32.Vec4{1, 1, 1, 1}
}

// TexturePixel samples a bound texture with a named sampler at SlotUV.
type TexturePixel struct {
	// Sampler names an entry of Uniforms.Samplers.
	Sampler string

	// Texture indexes Uniforms.Textures.
	Texture int

	// Modulate multiplies the sample by the vertex color.
	Modulate bool
}

// Pixel implements PixelStage.
func (t TexturePixel) Pixel(in AttributeSet, u *Uniforms, _ *PipelineState) f32.Vec4 {
	c := u.Sample(t.Sampler, t.Texture, in)
	if !t.Modulate {
		return c
	}
	v := colorOf(in)
	return f32.Vec4{c[0] * v[0], c[1] * v[1], c[2] * v[2], c[3] * v[3]}
}
