package vecmath

import "github.com/chewxy/math32"

// Mul returns l ⋅ r.
func Mul(l, r Mat4) (m Mat4) {
	for i := range 4 {
		for j := range 4 {
			var s float32
			for k := range 4 {
				s += l[4*i+k] * r[4*k+j]
			}
			m[4*i+j] = s
		}
	}
	return
}

// MulMV returns m ⋅ v.
func MulMV(m Mat4, v Vec4) (u Vec4) {
	for i := range u {
		u[i] = m[4*i]*v[0] + m[4*i+1]*v[1] + m[4*i+2]*v[2] + m[4*i+3]*v[3]
	}
	return
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a scale by (x, y, z).
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation of angle radians about the x axis.
func RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation of angle radians about the y axis.
func RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation of angle radians about the z axis.
func RotateZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 { return deg * math32.Pi / 180 }

// Perspective returns a projection for a camera at the origin looking down
// +z. fovY is the vertical field of view in degrees.
//
// The clip-space w of a projected point is its view-space z, and z/w maps
// [near, far] onto [0, 1], so 0 is the near plane.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(Radians(fovY)/2)
	a := far / (far - near)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, a, -a * near,
		0, 0, 1, 0,
	}
}

// LookAt returns a view matrix for a camera at eye looking at center.
// The camera looks down its +z axis, matching Perspective.
func LookAt(eye, center, up Vec3) Mat4 {
	f := Norm3(Sub3(center, eye))
	s := Norm3(Cross3(up, f))
	u := Cross3(f, s)
	return Mat4{
		s[0], s[1], s[2], -Dot3(s, eye),
		u[0], u[1], u[2], -Dot3(u, eye),
		f[0], f[1], f[2], -Dot3(f, eye),
		0, 0, 0, 1,
	}
}
