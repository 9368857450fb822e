// Package vecmath implements float32 vector and matrix arithmetic for rast.
//
// The value types are the ones from golang.org/x/image/math/f32, so values
// can be shared with any package that speaks f32 without conversion.
// Matrices are row major: m[4*r+c] is row r, column c. Vectors are columns,
// so a transform is applied as MulMV(m, v).
package vecmath

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Aliases for the f32 value types.
type (
	Vec2 = f32.Vec2
	Vec3 = f32.Vec3
	Vec4 = f32.Vec4
	Mat4 = f32.Mat4
)

// Add2 returns v + w.
func Add2(v, w Vec2) Vec2 { return Vec2{v[0] + w[0], v[1] + w[1]} }

// Sub2 returns v - w.
func Sub2(v, w Vec2) Vec2 { return Vec2{v[0] - w[0], v[1] - w[1]} }

// Scale2 returns s ⋅ v.
func Scale2(s float32, v Vec2) Vec2 { return Vec2{s * v[0], s * v[1]} }

// Mul2 returns the component-wise product of v and w.
func Mul2(v, w Vec2) Vec2 { return Vec2{v[0] * w[0], v[1] * w[1]} }

// Dot2 returns v ⋅ w.
func Dot2(v, w Vec2) float32 { return v[0]*w[0] + v[1]*w[1] }

// Cross2 returns the z component of the 3D cross product of v and w.
// Its sign tells on which side of v the vector w lies.
func Cross2(v, w Vec2) float32 { return v[0]*w[1] - v[1]*w[0] }

// Len2 returns the length of v.
func Len2(v Vec2) float32 { return math32.Sqrt(Dot2(v, v)) }

// Sub3 returns v - w.
func Sub3(v, w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// Scale3 returns s ⋅ v.
func Scale3(s float32, v Vec3) (u Vec3) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// Dot3 returns v ⋅ w.
func Dot3(v, w Vec3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Cross3 returns v × w.
func Cross3(v, w Vec3) (u Vec3) {
	u[0] = v[1]*w[2] - v[2]*w[1]
	u[1] = v[2]*w[0] - v[0]*w[2]
	u[2] = v[0]*w[1] - v[1]*w[0]
	return
}

// Len3 returns the length of v.
func Len3(v Vec3) float32 { return math32.Sqrt(Dot3(v, v)) }

// Norm3 returns v normalized.
// The zero vector is returned unchanged.
func Norm3(v Vec3) Vec3 {
	l := Len3(v)
	if l == 0 {
		return v
	}
	return Scale3(1/l, v)
}

// Add4 returns v + w.
func Add4(v, w Vec4) (u Vec4) {
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return
}

// Sub4 returns v - w.
func Sub4(v, w Vec4) (u Vec4) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// Lerp4 returns a + t⋅(b - a).
func Lerp4(a, b Vec4, t float32) Vec4 { return Add4(a, Scale4(t, Sub4(b, a))) }

// Scale4 returns s ⋅ v.
func Scale4(s float32, v Vec4) (u Vec4) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// XY returns the first two components of v.
func XY(v Vec4) Vec2 { return Vec2{v[0], v[1]} }

// V4 extends v with a w component.
func V4(v Vec3, w float32) Vec4 { return Vec4{v[0], v[1], v[2], w} }

// Clamp returns x limited to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
