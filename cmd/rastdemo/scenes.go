package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast"
	"github.com/gogpu/rast/texture"
	"github.com/gogpu/rast/vecmath"
)

// scene fills a pipeline with geometry and updates it per frame.
type scene interface {
	setup(p *rast.Pipeline) error
	frame(p *rast.Pipeline, angle float32)
	clearColor() f32.Vec4
}

func newScene(cfg *Config) (scene, error) {
	switch cfg.Scene {
	case "triangle":
		return &triangleScene{}, nil
	case "cube":
		return &cubeScene{}, nil
	case "floor":
		return &floorScene{filter: cfg.Filter}, nil
	default:
		return nil, fmt.Errorf("unknown scene %q (want triangle, cube or floor)", cfg.Scene)
	}
}

// vertex returns a vertex with a position and a color.
func vertex(pos f32.Vec4, c f32.Vec3) rast.AttributeSet {
	var a rast.AttributeSet
	a.SetVec4(rast.SlotPosition, pos)
	a.SetVec3(rast.SlotColor, c)
	return a
}

// triangleScene is the red, green and blue triangle, spun around the view
// axis.
type triangleScene struct{}

func (triangleScene) setup(p *rast.Pipeline) error {
	p.SetVertexBuffer([]rast.AttributeSet{
		vertex(f32.Vec4{-0.5, -0.5, 0, 1}, f32.Vec3{1, 0, 0}),
		vertex(f32.Vec4{0, 0.5, 0, 1}, f32.Vec3{0, 1, 0}),
		vertex(f32.Vec4{0.5, -0.5, 0, 1}, f32.Vec3{0, 0, 1}),
	})
	p.SetIndexBuffer([]int{0, 2, 1})
	p.SetShaders(rast.Transform, rast.VertexColor)
	return nil
}

func (triangleScene) frame(p *rast.Pipeline, angle float32) {
	p.Uniforms().SetMat4(rast.SlotTransform, vecmath.RotateZ(vecmath.Radians(angle)))
}

func (triangleScene) clearColor() f32.Vec4 { return f32.Vec4{0, 0, 0, 1} }

// cubeScene is a cube with one color per face, turning in front of the
// camera.
type cubeScene struct {
	viewProj f32.Mat4
}

var cubeFaces = []struct {
	corners [4]f32.Vec3
	color   f32.Vec3
}{
	{[4]f32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}}, f32.Vec3{1, 0.2, 0.2}},
	{[4]f32.Vec3{{1, -1, 1}, {-1, -1, 1}, {-1, 1, 1}, {1, 1, 1}}, f32.Vec3{0.2, 1, 0.2}},
	{[4]f32.Vec3{{-1, -1, 1}, {-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}}, f32.Vec3{0.2, 0.2, 1}},
	{[4]f32.Vec3{{1, -1, -1}, {1, -1, 1}, {1, 1, 1}, {1, 1, -1}}, f32.Vec3{1, 1, 0.2}},
	{[4]f32.Vec3{{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}}, f32.Vec3{0.2, 1, 1}},
	{[4]f32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, -1, -1}, {-1, -1, -1}}, f32.Vec3{1, 0.2, 1}},
}

func (s *cubeScene) setup(p *rast.Pipeline) error {
	var vertices []rast.AttributeSet
	var indices []int
	for _, face := range cubeFaces {
		base := len(vertices)
		for _, c := range face.corners {
			vertices = append(vertices, vertex(vecmath.V4(c, 1), face.color))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	p.SetVertexBuffer(vertices)
	p.SetIndexBuffer(indices)
	p.SetShaders(rast.Transform, rast.VertexColor)

	state := p.State()
	view := vecmath.LookAt(f32.Vec3{0, 2, -4.5}, f32.Vec3{}, f32.Vec3{0, 1, 0})
	s.viewProj = vecmath.Mul(state.Projection(), view)
	return nil
}

func (s *cubeScene) frame(p *rast.Pipeline, angle float32) {
	a := vecmath.Radians(angle)
	model := vecmath.Mul(vecmath.RotateY(a), vecmath.RotateX(a/2))
	p.Uniforms().SetMat4(rast.SlotTransform, vecmath.Mul(s.viewProj, model))
}

func (s *cubeScene) clearColor() f32.Vec4 { return f32.Vec4{0.1, 0.1, 0.15, 1} }

// floorScene is a checkered plane running to the horizon, the case where
// mipmapping and anisotropic filtering matter.
type floorScene struct {
	filter string
	proj   f32.Mat4
	model  f32.Mat4
}

// checker returns a size x size image of cells x cells squares.
func checker(size, cells int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	for y := range size {
		for x := range size {
			c := color.NRGBA{R: 30, G: 30, B: 40, A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{R: 230, G: 220, B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func (s *floorScene) sampler() (*texture.Sampler, error) {
	d := gputypes.SamplerDescriptor{
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.MipmapFilterModeLinear,
	}
	switch s.filter {
	case "nearest":
		d.MagFilter, d.MinFilter = gputypes.FilterModeNearest, gputypes.FilterModeNearest
		d.MipmapFilter = gputypes.MipmapFilterModeUndefined
	case "linear":
	case "anisotropic":
		d.MaxAnisotropy = texture.DefaultMaxAnisotropy
	default:
		return nil, fmt.Errorf("unknown filter %q (want nearest, linear or anisotropic)", s.filter)
	}
	return texture.NewSampler(texture.FromDescriptor(d)), nil
}

func (s *floorScene) setup(p *rast.Pipeline) error {
	tex, err := texture.FromImage(checker(128, 8), texture.AllLevels)
	if err != nil {
		return err
	}
	smp, err := s.sampler()
	if err != nil {
		return err
	}
	u := rast.NewUniforms()
	u.SetSampler("floor", smp)
	idx := u.BindTexture(tex)
	p.SetUniforms(u)

	// A unit square with its texture tiled, stretched into place by the
	// model matrix.
	const tiles = 20
	corner := func(x, z float32) rast.AttributeSet {
		a := vertex(f32.Vec4{x, 0, z, 1}, f32.Vec3{1, 1, 1})
		a.SetVec2(rast.SlotUV, f32.Vec2{(x + 1) / 2 * tiles, (z + 1) / 2 * tiles})
		return a
	}
	p.SetVertexBuffer([]rast.AttributeSet{
		corner(-1, -1),
		corner(1, -1),
		corner(1, 1),
		corner(-1, 1),
	})
	p.SetIndexBuffer([]int{0, 1, 2, 0, 2, 3})
	p.SetShaders(rast.Transform, rast.TexturePixel{Sampler: "floor", Texture: idx})

	state := p.State()
	s.proj = state.Projection()
	s.model = vecmath.Mul(vecmath.Translate(0, -1, 0), vecmath.Scale(40, 1, 40))
	return nil
}

func (s *floorScene) frame(p *rast.Pipeline, angle float32) {
	view := vecmath.RotateY(vecmath.Radians(angle))
	p.Uniforms().SetMat4(rast.SlotTransform, vecmath.Mul(s.proj, vecmath.Mul(view, s.model)))
}

func (s *floorScene) clearColor() f32.Vec4 { return f32.Vec4{0.55, 0.7, 0.9, 1} }
