package rast

import (
	"maps"
	"strconv"

	"golang.org/x/image/math/f32"
)

// Slot is a semantic key of an attribute in an AttributeSet.
type Slot uint8

// Predeclared slots. Callers define their own from SlotUser upward.
const (
	// SlotPosition holds the homogeneous clip-space position (4-vector).
	// Every vertex stage output must set it.
	SlotPosition Slot = iota

	// SlotUV holds texture coordinates (2-vector).
	SlotUV

	// SlotDdxUV and SlotDdyUV hold the screen-space derivatives of SlotUV.
	// The rasterizer fills them for pixel stage inputs.
	SlotDdxUV
	SlotDdyUV

	// SlotColor holds a vertex color (3- or 4-vector).
	SlotColor

	// SlotNormal holds a surface normal (3-vector).
	SlotNormal

	// SlotWorldPos holds a world-space position (3- or 4-vector).
	SlotWorldPos

	// SlotTransform holds the model-view-projection matrix in Uniforms.
	SlotTransform

	// SlotUser is the first slot free for callers.
	SlotUser
)

var slotNames = [...]string{
	SlotPosition:  "Position",
	SlotUV:        "UV",
	SlotDdxUV:     "DdxUV",
	SlotDdyUV:     "DdyUV",
	SlotColor:     "Color",
	SlotNormal:    "Normal",
	SlotWorldPos:  "WorldPos",
	SlotTransform: "Transform",
}

// String returns the name of a predeclared slot, or "User+n".
func (s Slot) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return "User+" + strconv.Itoa(int(s-SlotUser))
}

// AttributeSet maps slots to typed values, partitioned by type.
//
// The rasterizer interpolates scalars, vectors and matrices across a
// triangle. Integers are flat: pixels take the value of the triangle's
// first vertex. All three vertices of a triangle must carry the same slots.
//
// The zero value is ready to use.
type AttributeSet struct {
	Scalars map[Slot]float32
	Vec2s   map[Slot]f32.Vec2
	Vec3s   map[Slot]f32.Vec3
	Vec4s   map[Slot]f32.Vec4
	Mat4s   map[Slot]f32.Mat4
	Ints    map[Slot]int32
}

// NewAttributeSet returns an empty attribute set.
func NewAttributeSet() AttributeSet {
	return AttributeSet{}
}

// SetScalar stores a float32 in slot s.
func (a *AttributeSet) SetScalar(s Slot, v float32) {
	if a.Scalars == nil {
		a.Scalars = make(map[Slot]float32)
	}
	a.Scalars[s] = v
}

// SetVec2 stores a 2-vector in slot s.
func (a *AttributeSet) SetVec2(s Slot, v f32.Vec2) {
	if a.Vec2s == nil {
		a.Vec2s = make(map[Slot]f32.Vec2)
	}
	a.Vec2s[s] = v
}

// SetVec3 stores a 3-vector in slot s.
func (a *AttributeSet) SetVec3(s Slot, v f32.Vec3) {
	if a.Vec3s == nil {
		a.Vec3s = make(map[Slot]f32.Vec3)
	}
	a.Vec3s[s] = v
}

// SetVec4 stores a 4-vector in slot s.
func (a *AttributeSet) SetVec4(s Slot, v f32.Vec4) {
	if a.Vec4s == nil {
		a.Vec4s = make(map[Slot]f32.Vec4)
	}
	a.Vec4s[s] = v
}

// SetMat4 stores a 4x4 matrix in slot s.
func (a *AttributeSet) SetMat4(s Slot, v f32.Mat4) {
	if a.Mat4s == nil {
		a.Mat4s = make(map[Slot]f32.Mat4)
	}
	a.Mat4s[s] = v
}

// SetInt stores an integer in slot s.
func (a *AttributeSet) SetInt(s Slot, v int32) {
	if a.Ints == nil {
		a.Ints = make(map[Slot]int32)
	}
	a.Ints[s] = v
}

// Scalar returns the float32 in slot s.
func (a AttributeSet) Scalar(s Slot) (float32, bool) {
	v, ok := a.Scalars[s]
	return v, ok
}

// Vec2 returns the 2-vector in slot s.
func (a AttributeSet) Vec2(s Slot) (f32.Vec2, bool) {
	v, ok := a.Vec2s[s]
	return v, ok
}

// Vec3 returns the 3-vector in slot s.
func (a AttributeSet) Vec3(s Slot) (f32.Vec3, bool) {
	v, ok := a.Vec3s[s]
	return v, ok
}

// Vec4 returns the 4-vector in slot s.
func (a AttributeSet) Vec4(s Slot) (f32.Vec4, bool) {
	v, ok := a.Vec4s[s]
	return v, ok
}

// Mat4 returns the 4x4 matrix in slot s.
func (a AttributeSet) Mat4(s Slot) (f32.Mat4, bool) {
	v, ok := a.Mat4s[s]
	return v, ok
}

// Int returns the integer in slot s.
func (a AttributeSet) Int(s Slot) (int32, bool) {
	v, ok := a.Ints[s]
	return v, ok
}

// Position returns the SlotPosition 4-vector.
func (a AttributeSet) Position() (f32.Vec4, bool) {
	return a.Vec4(SlotPosition)
}

// Len returns the total number of attributes.
func (a AttributeSet) Len() int {
	return len(a.Scalars) + len(a.Vec2s) + len(a.Vec3s) +
		len(a.Vec4s) + len(a.Mat4s) + len(a.Ints)
}

// Clone returns a deep copy of a.
func (a AttributeSet) Clone() AttributeSet {
	return AttributeSet{
		Scalars: maps.Clone(a.Scalars),
		Vec2s:   maps.Clone(a.Vec2s),
		Vec3s:   maps.Clone(a.Vec3s),
		Vec4s:   maps.Clone(a.Vec4s),
		Mat4s:   maps.Clone(a.Mat4s),
		Ints:    maps.Clone(a.Ints),
	}
}

// Reset removes all attributes, keeping the allocated maps.
func (a *AttributeSet) Reset() {
	clear(a.Scalars)
	clear(a.Vec2s)
	clear(a.Vec3s)
	clear(a.Vec4s)
	clear(a.Mat4s)
	clear(a.Ints)
}

// SameLayout reports whether a and b carry the same slots with the same
// types.
func (a AttributeSet) SameLayout(b AttributeSet) bool {
	return sameKeys(a.Scalars, b.Scalars) &&
		sameKeys(a.Vec2s, b.Vec2s) &&
		sameKeys(a.Vec3s, b.Vec3s) &&
		sameKeys(a.Vec4s, b.Vec4s) &&
		sameKeys(a.Mat4s, b.Mat4s) &&
		sameKeys(a.Ints, b.Ints)
}

func sameKeys[V any](a, b map[Slot]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Lerp writes the weighted sum f[0]*a0 + f[1]*a1 + f[2]*a2 of every
// attribute in a0 into out. Integers are copied from a0. Slots missing from
// a1 or a2 contribute zero.
//
// Existing entries of out are overwritten, others are kept; Reset out first
// to reuse it.
func Lerp(out *AttributeSet, f f32.Vec3, a0, a1, a2 *AttributeSet) {
	for k, v := range a0.Scalars {
		out.SetScalar(k, f[0]*v+f[1]*a1.Scalars[k]+f[2]*a2.Scalars[k])
	}
	for k, v := range a0.Vec2s {
		out.SetVec2(k, lerp2(f, v, a1.Vec2s[k], a2.Vec2s[k]))
	}
	for k, v := range a0.Vec3s {
		out.SetVec3(k, lerp3(f, v, a1.Vec3s[k], a2.Vec3s[k]))
	}
	for k, v := range a0.Vec4s {
		out.SetVec4(k, lerp4(f, v, a1.Vec4s[k], a2.Vec4s[k]))
	}
	for k, v := range a0.Mat4s {
		m1, m2 := a1.Mat4s[k], a2.Mat4s[k]
		var m f32.Mat4
		for i := range m {
			m[i] = f[0]*v[i] + f[1]*m1[i] + f[2]*m2[i]
		}
		out.SetMat4(k, m)
	}
	for k, v := range a0.Ints {
		out.SetInt(k, v)
	}
}

// Lerp2 writes (1-t)*a + t*b of every attribute in a into out. Integers are
// copied from a.
func Lerp2(out *AttributeSet, t float32, a, b *AttributeSet) {
	Lerp(out, f32.Vec3{1 - t, t, 0}, a, b, b)
}

func lerp2(f f32.Vec3, a, b, c f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		f[0]*a[0] + f[1]*b[0] + f[2]*c[0],
		f[0]*a[1] + f[1]*b[1] + f[2]*c[1],
	}
}

func lerp3(f f32.Vec3, a, b, c f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		f[0]*a[0] + f[1]*b[0] + f[2]*c[0],
		f[0]*a[1] + f[1]*b[1] + f[2]*c[1],
		f[0]*a[2] + f[1]*b[2] + f[2]*c[2],
	}
}

func lerp4(f f32.Vec3, a, b, c f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		f[0]*a[0] + f[1]*b[0] + f[2]*c[0],
		f[0]*a[1] + f[1]*b[1] + f[2]*c[1],
		f[0]*a[2] + f[1]*b[2] + f[2]*c[2],
		f[0]*a[3] + f[1]*b[3] + f[2]*c[3],
	}
}
