package rast

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/vecmath"
)

// barycentric computes the weights of a point relative to the triangle
// (a, b, c), measured from c.
type barycentric struct {
	c      f32.Vec2
	ca, cb f32.Vec2
	inv    float32
}

// newBarycentric prepares the weights of (a, b, c) and returns twice the
// signed area, positive for a counter-clockwise triangle.
func newBarycentric(a, b, c f32.Vec2) (barycentric, float32) {
	ca, cb := vecmath.Sub2(a, c), vecmath.Sub2(b, c)
	area := vecmath.Cross2(ca, cb)
	return barycentric{c: c, ca: ca, cb: cb, inv: 1 / area}, area
}

// at returns the weights of p. They sum to 1 and are all non-negative
// inside the triangle.
func (b *barycentric) at(p f32.Vec2) f32.Vec3 {
	d := vecmath.Sub2(p, b.c)
	f0 := vecmath.Cross2(d, b.cb) * b.inv
	f1 := -vecmath.Cross2(d, b.ca) * b.inv
	return f32.Vec3{f0, f1, 1 - f0 - f1}
}

// covers reports whether p lies inside or on the edge of the triangle.
func (b *barycentric) covers(p f32.Vec2) bool {
	f := b.at(p)
	return f[0] >= 0 && f[1] >= 0 && f[2] >= 0
}

// setupResult tells why a triangle was or was not set up.
type setupResult uint8

const (
	setupOK setupResult = iota
	setupDegenerate
	setupCulled
)

// setupTriangle is a post-division triangle ready to rasterize.
type setupTriangle struct {
	v [3]*AttributeSet

	// screen weighs points in target pixels, ndc in NDC.
	screen barycentric
	ndc    barycentric

	z    f32.Vec3 // NDC depth per vertex
	invW f32.Vec3 // 1 / clip w per vertex

	// bbox is the covered pixel range rounded outward to even coordinates.
	bbox image.Rectangle
}

// newSetupTriangle maps the vertices to the target, rejects zero-area and
// culled triangles and computes the quad-aligned bounding box.
func newSetupTriangle(v [3]*AttributeSet, width, height int, cull CullMode) (setupTriangle, setupResult) {
	t := setupTriangle{v: v}
	size := f32.Vec2{float32(width), float32(height)}

	var ndc, scr [3]f32.Vec2
	for i, a := range v {
		pos, _ := a.Position()
		ndc[i] = vecmath.XY(pos)
		scr[i] = vecmath.Mul2(vecmath.Scale2(0.5, f32.Vec2{pos[0] + 1, pos[1] + 1}), size)
		t.z[i] = pos[2]
		t.invW[i] = 1 / pos[3]
	}

	var area, ndcArea float32
	t.screen, area = newBarycentric(scr[0], scr[1], scr[2])
	t.ndc, ndcArea = newBarycentric(ndc[0], ndc[1], ndc[2])
	// Negated comparisons also reject NaN.
	if !(math32.Abs(area) > 0) || !(math32.Abs(ndcArea) > 0) {
		return t, setupDegenerate
	}
	if (cull == CullBack && area < 0) || (cull == CullFront && area > 0) {
		return t, setupCulled
	}

	minX := min(scr[0][0], scr[1][0], scr[2][0])
	maxX := max(scr[0][0], scr[1][0], scr[2][0])
	minY := min(scr[0][1], scr[1][1], scr[2][1])
	maxY := max(scr[0][1], scr[1][1], scr[2][1])

	x0 := max(int(minX), 0) &^ 1
	y0 := max(int(minY), 0) &^ 1
	x1 := (min(int(maxX)+1, width) + 1) &^ 1
	y1 := (min(int(maxY)+1, height) + 1) &^ 1
	t.bbox = image.Rect(x0, y0, x1, y1)
	if x1 <= x0 || y1 <= y0 {
		t.bbox = image.Rectangle{}
	}
	return t, setupOK
}

// perspective turns screen-linear weights into perspective-correct ones.
func (t *setupTriangle) perspective(f f32.Vec3) f32.Vec3 {
	c := f32.Vec3{f[0] * t.invW[0], f[1] * t.invW[1], f[2] * t.invW[2]}
	inv := 1 / (c[0] + c[1] + c[2])
	return f32.Vec3{c[0] * inv, c[1] * inv, c[2] * inv}
}

// depth returns the NDC depth for screen-linear weights.
func (t *setupTriangle) depth(f f32.Vec3) float32 {
	return f[0]*t.z[0] + f[1]*t.z[1] + f[2]*t.z[2]
}

// quadSteps are the pixel offsets of a 2x2 quad: the horizontal neighbours
// are (0, 1) and (2, 3), the vertical ones (0, 2) and (1, 3).
var quadSteps = [4]image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// quadScratch holds the per-quad working set of one rasterizing goroutine.
type quadScratch struct {
	in    [4]AttributeSet
	masks [4]uint32
	ndc   [4]f32.Vec2
}

// rasterizer draws set-up triangles into the sample planes. It is shared
// read-only between tiles; per-goroutine state lives in quadScratch.
type rasterizer struct {
	state    *PipelineState
	targets  *renderTargets
	uniforms *Uniforms
	pixel    PixelStage
}

// draw rasterizes t inside area, whose corners must be even, and returns
// the number of shaded pixels.
func (r *rasterizer) draw(t *setupTriangle, area image.Rectangle, q *quadScratch) int {
	b := t.bbox.Intersect(area)
	shaded := 0
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			shaded += r.quad(t, x, y, q)
		}
	}
	return shaded
}

// quad rasterizes the 2x2 quad with bottom-left pixel (x, y).
func (r *rasterizer) quad(t *setupTriangle, x, y int, q *quadScratch) int {
	w, h := r.targets.width, r.targets.height
	size := f32.Vec2{float32(w), float32(h)}

	covered := false
	for j, step := range quadSteps {
		px, py := x+step.X, y+step.Y
		var sum f32.Vec2
		var n int
		var m uint32
		if px < w && py < h {
			for i, off := range r.state.SampleOffsets {
				p := f32.Vec2{float32(px) + off[0], float32(py) + off[1]}
				if t.screen.covers(p) {
					sum = vecmath.Add2(sum, off)
					n++
					m |= 1 << uint(i)
				}
			}
		}

		// Uncovered pixels are still interpolated, at their centre, so the
		// quad has derivatives.
		center := f32.Vec2{0.5, 0.5}
		if n > 0 {
			center = vecmath.Scale2(1/float32(n), sum)
			covered = true
		}
		q.masks[j] = m
		q.ndc[j] = f32.Vec2{
			(float32(px)+center[0])/size[0]*2 - 1,
			(float32(py)+center[1])/size[1]*2 - 1,
		}
	}
	if !covered {
		return 0
	}

	var depths [4]float32
	for j := range q.in {
		f := t.ndc.at(q.ndc[j])
		in := &q.in[j]
		in.Reset()
		Lerp(in, t.perspective(f), t.v[0], t.v[1], t.v[2])
		pos, _ := in.Position()
		depths[j] = t.depth(f)
		in.SetVec4(SlotPosition, f32.Vec4{q.ndc[j][0], q.ndc[j][1], depths[j], pos[3]})
	}
	if _, ok := t.v[0].Vec2(SlotUV); ok {
		q.derivatives()
	}

	shaded := 0
	for j, step := range quadSteps {
		if q.masks[j] == 0 {
			continue
		}
		c := r.pixel.Pixel(q.in[j], r.uniforms, r.state)
		r.write(x+step.X, y+step.Y, q.masks[j], c, depths[j])
		shaded++
	}
	return shaded
}

// derivatives stores the UV differences between quad neighbours in every
// pixel input.
func (q *quadScratch) derivatives() {
	var uv [4]f32.Vec2
	for j := range q.in {
		uv[j], _ = q.in[j].Vec2(SlotUV)
	}
	ddx := [2]f32.Vec2{vecmath.Sub2(uv[1], uv[0]), vecmath.Sub2(uv[3], uv[2])}
	ddy := [2]f32.Vec2{vecmath.Sub2(uv[2], uv[0]), vecmath.Sub2(uv[3], uv[1])}
	for j := range q.in {
		q.in[j].SetVec2(SlotDdxUV, ddx[j/2])
		q.in[j].SetVec2(SlotDdyUV, ddy[j%2])
	}
}

// write stores color and depth into the samples of mask that pass the
// depth test and marks the samples covered.
func (r *rasterizer) write(x, y int, mask uint32, c f32.Vec4, depth float32) {
	idx := y*r.targets.width + x
	for i := range r.targets.samples() {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		dp := r.targets.depths[i].Pix()
		if r.state.DepthTest && !r.state.depthPasses(depth, dp[idx]) {
			continue
		}
		dp[idx] = depth
		r.targets.colors[i].Pix()[idx] = c
	}
	r.targets.masks[idx] |= mask
}

// evenCeil rounds the maximum corner of r up to even coordinates.
func evenCeil(r image.Rectangle) image.Rectangle {
	r.Max.X = (r.Max.X + 1) &^ 1
	r.Max.Y = (r.Max.Y + 1) &^ 1
	return r
}
