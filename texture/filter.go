package texture

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast/vecmath"
)

// nearest returns the texel of level n containing st. st must be in [0, 1].
func nearest(tex *Texture, st f32.Vec2, n int) f32.Vec4 {
	w, h := tex.LevelSize(n)
	x := min(int(st[0]*float32(w)), w-1)
	y := min(int(st[1]*float32(h)), h-1)
	return tex.At(x, y, n)
}

// bilinear blends the 4 texels of level n whose centers surround st.
// With repeat the neighbours of an edge texel wrap to the opposite edge,
// otherwise the edge texel is reused.
func bilinear(tex *Texture, st f32.Vec2, n int, repeat bool) f32.Vec4 {
	w, h := tex.LevelSize(n)
	x0, x1, ku := taps(st[0], w, repeat)
	y0, y1, kv := taps(st[1], h, repeat)

	c00 := tex.At(x0, y0, n)
	c10 := tex.At(x1, y0, n)
	c01 := tex.At(x0, y1, n)
	c11 := tex.At(x1, y1, n)

	var c f32.Vec4
	for i := range c {
		top := ku*c00[i] + (1-ku)*c10[i]
		bot := ku*c01[i] + (1-ku)*c11[i]
		c[i] = kv*top + (1-kv)*bot
	}
	return c
}

// taps returns the two texel indices around coordinate u in a row of size
// texels and the weight of the first one. Texel i covers [i, i+1) and has
// its center at i+0.5.
func taps(u float32, size int, repeat bool) (i0, i1 int, k float32) {
	if u >= 1 {
		return size - 1, size - 1, 1
	}
	p := u * float32(size)
	i := int(p)
	f := p - float32(i)
	if f < 0.5 {
		// Between the centers of i-1 and i.
		i0, i1 = i-1, i
		if i0 < 0 {
			if repeat {
				i0 = size - 1
			} else {
				i0 = 0
			}
		}
		return i0, i1, 0.5 - f
	}
	// Between the centers of i and i+1.
	i0, i1 = i, i+1
	if i1 >= size {
		if repeat {
			i1 = 0
		} else {
			i1 = size - 1
		}
	}
	return i0, i1, 1.5 - f
}

// sampleAnisotropic averages bilinear samples spread along the major axis of
// the pixel footprint. The mip level follows the minor axis, so detail is
// kept along the direction the footprint is thin.
func (s *Sampler) sampleAnisotropic(tex *Texture, uv, ddx, ddy f32.Vec2) f32.Vec4 {
	w, h := float32(tex.Width()), float32(tex.Height())

	a := f32.Vec2{ddx[0] * w, ddx[1] * h}
	b := f32.Vec2{ddy[0] * w, ddy[1] * h}
	if vecmath.Dot2(b, b) > vecmath.Dot2(a, a) {
		a, b = b, a
	}
	// Keep only the part of the minor axis orthogonal to the major one.
	if aa := vecmath.Dot2(a, a); aa > 0 {
		t := vecmath.Dot2(a, b) / aa
		b = vecmath.Sub2(b, vecmath.Scale2(t, a))
	}
	la, lb := vecmath.Len2(a), vecmath.Len2(b)

	count := 1
	switch {
	case lb > 0:
		count = int(math32.Ceil(la / lb))
	case la > 0:
		count = s.cfg.MaxAnisotropy
	}
	count = max(1, min(count, s.cfg.MaxAnisotropy))

	// When the count is capped the minor axis alone would under-filter.
	lod := lodOf(math32.Max(lb, la/float32(count)))

	fetch := func(tex *Texture, st f32.Vec2, n int) f32.Vec4 {
		return bilinear(tex, st, n, s.cfg.Address == AddressRepeat)
	}
	if count == 1 {
		return s.sampleLevels(tex, f32.Vec2{s.wrap(uv[0]), s.wrap(uv[1])}, lod, fetch)
	}

	// Major axis in normalized coordinates.
	step := f32.Vec2{a[0] / w, a[1] / h}
	var sum f32.Vec4
	for i := range count {
		t := (float32(i)+0.5)/float32(count) - 0.5
		p := f32.Vec2{uv[0] + t*step[0], uv[1] + t*step[1]}
		var c f32.Vec4
		if s.cfg.Address == AddressClampToBorder && outside(p) {
			c = s.cfg.Border
		} else {
			c = s.sampleLevels(tex, f32.Vec2{s.wrap(p[0]), s.wrap(p[1])}, lod, fetch)
		}
		sum = vecmath.Add4(sum, c)
	}
	return vecmath.Scale4(1/float32(count), sum)
}

