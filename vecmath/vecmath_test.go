package vecmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const standardTol = 1e-5

func assertVec4InDelta(t *testing.T, want, got Vec4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], standardTol, "component %d of %v", i, got)
	}
}

func TestVectors(t *testing.T) {
	v := Vec3{1, 2, 4}
	w := Vec3{0, -1, 2}

	assert.Equal(t, Vec3{1, 3, 2}, Sub3(v, w))
	assert.Equal(t, Vec3{-1, -2, -4}, Scale3(-1, v))
	assert.Equal(t, float32(6), Dot3(v, w))
	assert.Equal(t, math32.Sqrt(21), Len3(v))
	assert.Equal(t, Vec3{1, 0, 0}, Cross3(Vec3{0, 0, -1}, Vec3{0, 1, 0}))
	assert.Equal(t, Vec3{0, 0, -1}, Norm3(Vec3{0, 0, -2}))
	assert.Equal(t, Vec3{}, Norm3(Vec3{}))

	assert.Equal(t, float32(1), Cross2(Vec2{1, 0}, Vec2{0, 1}))
	assert.Equal(t, float32(-1), Cross2(Vec2{0, 1}, Vec2{1, 0}))
	assert.Equal(t, float32(5), Len2(Vec2{3, 4}))
	assert.Equal(t, Vec2{3, 8}, Mul2(Vec2{1, 2}, Vec2{3, 4}))

	assert.Equal(t, Vec4{2, 4, 6, 8}, Scale4(2, Vec4{1, 2, 3, 4}))
	assert.Equal(t, Vec4{1, 0, 2, 1}, Sub4(Vec4{2, 2, 5, 3}, Vec4{1, 2, 3, 2}))
	assert.Equal(t, Vec4{0.5, 1, 1.5, 1}, Lerp4(Vec4{0, 0, 0, 1}, Vec4{1, 2, 3, 1}, 0.5))
	assert.Equal(t, Vec4{1, 2, 3, 4}, Lerp4(Vec4{}, Vec4{1, 2, 3, 4}, 1))
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
	assert.Equal(t, float32(1), Clamp(3, 0, 1))
	assert.Equal(t, float32(2), Dot2(Vec2{1, 1}, Vec2{3, -1}))
	assert.Equal(t, Vec2{1, 2}, XY(Vec4{1, 2, 3, 4}))
	assert.Equal(t, Vec4{1, 2, 3, 9}, V4(Vec3{1, 2, 3}, 9))
}

func TestMatrices(t *testing.T) {
	p := Vec4{1, 2, 3, 1}

	assert.Equal(t, p, MulMV(Translate(0, 0, 0), p))
	assert.Equal(t, Vec4{2, 2, 3, 1}, MulMV(Translate(1, 0, 0), p))
	assert.Equal(t, Vec4{2, 4, 6, 1}, MulMV(Scale(2, 2, 2), p))

	m := Mul(Translate(1, 1, 1), Scale(2, 2, 2))
	assert.Equal(t, Vec4{3, 5, 7, 1}, MulMV(m, p))

	assertVec4InDelta(t, Vec4{0, 1, 0, 1}, MulMV(RotateZ(math32.Pi/2), Vec4{1, 0, 0, 1}))
	assertVec4InDelta(t, Vec4{0, 0, 1, 1}, MulMV(RotateX(math32.Pi/2), Vec4{0, 1, 0, 1}))
	assertVec4InDelta(t, Vec4{0, 0, -1, 1}, MulMV(RotateY(math32.Pi/2), Vec4{1, 0, 0, 1}))
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.5, 10
	proj := Perspective(90, 1, near, far)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", near, 0},
		{"far plane", far, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MulMV(proj, Vec4{0, 0, tt.z, 1})
			assert.InDelta(t, tt.z, c[3], standardTol, "clip w is view depth")
			assert.InDelta(t, tt.depth, c[2]/c[3], standardTol)
		})
	}

	// 90 degrees: a point on the 45 degree line lands on the NDC edge.
	c := MulMV(proj, Vec4{2, 0, 2, 1})
	assert.InDelta(t, 1, c[0]/c[3], standardTol)
}

func TestLookAt(t *testing.T) {
	view := LookAt(Vec3{0, 0, -5}, Vec3{}, Vec3{0, 1, 0})
	assertVec4InDelta(t, Vec4{0, 0, 5, 1}, MulMV(view, Vec4{0, 0, 0, 1}))
	assertVec4InDelta(t, Vec4{1, 0, 5, 1}, MulMV(view, Vec4{1, 0, 0, 1}))
}
