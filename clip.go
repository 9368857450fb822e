package rast

import "golang.org/x/image/math/f32"

// clipPlaneCount is the number of planes bounding the view volume.
const clipPlaneCount = 6

// clipDistance returns the signed distance of a clip-space position to
// plane i; the visible side is non-negative. The planes are x >= -w,
// x <= w, y >= -w, y <= w, w >= near and w <= far.
func clipDistance(i int, pos f32.Vec4, near, far float32) float32 {
	x, y, w := pos[0], pos[1], pos[3]
	switch i {
	case 0:
		return w + x
	case 1:
		return w - x
	case 2:
		return w + y
	case 3:
		return w - y
	case 4:
		return w - near
	default:
		return far - w
	}
}

// shouldClip reports whether a clip-space position lies outside the view
// volume. NaN positions are outside.
func shouldClip(pos f32.Vec4, near, far float32) bool {
	x, y, w := pos[0], pos[1], pos[3]
	return !(w >= near && w <= far && x >= -w && x <= w && y >= -w && y <= w)
}

// needsClip reports whether any vertex of a triangle leaves the view
// volume.
func needsClip(v [3]*AttributeSet, near, far float32) bool {
	for _, a := range v {
		pos, _ := a.Position()
		if shouldClip(pos, near, far) {
			return true
		}
	}
	return false
}

// clipTriangle cuts a clip-space triangle against the view volume
// (Sutherland-Hodgman) and returns the resulting convex polygon in the
// triangle's winding. Attributes of new vertices are interpolated linearly
// along the cut edge. A triangle entirely outside yields fewer than three
// vertices.
func clipTriangle(v [3]*AttributeSet, near, far float32) []*AttributeSet {
	poly := []*AttributeSet{v[0], v[1], v[2]}
	for plane := range clipPlaneCount {
		if len(poly) == 0 {
			break
		}
		next := make([]*AttributeSet, 0, len(poly)+1)
		for i, a := range poly {
			b := poly[(i+1)%len(poly)]
			pa, _ := a.Position()
			pb, _ := b.Position()
			da := clipDistance(plane, pa, near, far)
			db := clipDistance(plane, pb, near, far)

			if da >= 0 {
				next = append(next, a)
			}
			if (da >= 0) != (db >= 0) {
				cut := &AttributeSet{}
				Lerp2(cut, da/(da-db), a, b)
				next = append(next, cut)
			}
		}
		poly = next
	}
	return poly
}

// fan splits a convex polygon into triangles sharing its first vertex.
func fan(poly []*AttributeSet) [][3]*AttributeSet {
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]*AttributeSet, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]*AttributeSet{poly[0], poly[i], poly[i+1]})
	}
	return tris
}

// perspectiveDivide divides the position x, y and z by w in place. w keeps
// the clip-space value for perspective-correct interpolation.
func perspectiveDivide(a *AttributeSet) {
	pos, _ := a.Position()
	w := pos[3]
	a.SetVec4(SlotPosition, f32.Vec4{pos[0] / w, pos[1] / w, pos[2] / w, w})
}
