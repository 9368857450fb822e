package rast

import (
	"golang.org/x/image/math/f32"

	intImage "github.com/gogpu/rast/internal/image"
)

// renderTargets holds the multisampled color and depth planes, one per
// sample index, the per-pixel coverage masks and the resolved planes.
//
// Sample planes and masks are addressed in target space: row 0 is NDC
// y = -1. The resolved planes are stored top row first, the layout of a
// presented image.
type renderTargets struct {
	width, height int

	colors []*intImage.ColorPlane
	depths []*intImage.DepthPlane
	masks  []uint32

	resolved      *intImage.ColorPlane
	resolvedDepth *intImage.DepthPlane
}

// resize reallocates the planes for a new size or sample count and reports
// whether anything changed. Old planes go back to the default pool.
func (t *renderTargets) resize(width, height, samples int) bool {
	if t.width == width && t.height == height && len(t.colors) == samples {
		return false
	}
	t.release()

	t.width, t.height = width, height
	t.colors = make([]*intImage.ColorPlane, samples)
	t.depths = make([]*intImage.DepthPlane, samples)
	for i := range samples {
		t.colors[i] = intImage.GetColorFromDefault(width, height)
		t.depths[i] = intImage.GetDepthFromDefault(width, height)
	}
	t.masks = make([]uint32, width*height)
	t.resolved = intImage.GetColorFromDefault(width, height)
	t.resolvedDepth = intImage.GetDepthFromDefault(width, height)
	return true
}

// release returns every plane to the default pool.
func (t *renderTargets) release() {
	for _, c := range t.colors {
		intImage.PutColorToDefault(c)
	}
	for _, d := range t.depths {
		intImage.PutDepthToDefault(d)
	}
	intImage.PutColorToDefault(t.resolved)
	intImage.PutDepthToDefault(t.resolvedDepth)
	*t = renderTargets{}
}

// clear fills every sample and resolved plane and zeroes the masks.
func (t *renderTargets) clear(color f32.Vec4, depth float32) {
	for _, c := range t.colors {
		c.Fill(color)
	}
	for _, d := range t.depths {
		d.Fill(depth)
	}
	clear(t.masks)
	t.resolved.Fill(color)
	t.resolvedDepth.Fill(depth)
}

// samples returns the sample count.
func (t *renderTargets) samples() int {
	return len(t.colors)
}
