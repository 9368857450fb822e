package rast

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// resolve merges the samples of every covered pixel into the resolved
// planes: the color is the sum of the covered sample colors divided by the
// sample count, the depth the nearest covered sample. Pixels without
// coverage keep their clear values. Rows are flipped so the resolved planes
// start at the top row.
func (t *renderTargets) resolve() {
	n := t.samples()
	inv := 1 / float32(n)
	rc := t.resolved.Pix()
	rd := t.resolvedDepth.Pix()

	for y := range t.height {
		row := y * t.width
		dst := (t.height - 1 - y) * t.width
		for x := range t.width {
			m := t.masks[row+x]
			if m == 0 {
				continue
			}
			var sum f32.Vec4
			depth := math32.Inf(1)
			for i := range n {
				if m&(1<<uint(i)) == 0 {
					continue
				}
				c := t.colors[i].Pix()[row+x]
				sum[0] += c[0]
				sum[1] += c[1]
				sum[2] += c[2]
				sum[3] += c[3]
				depth = min(depth, t.depths[i].Pix()[row+x])
			}
			rc[dst+x] = f32.Vec4{sum[0] * inv, sum[1] * inv, sum[2] * inv, sum[3] * inv}
			rd[dst+x] = depth
		}
	}
}

// resolvedIndex maps target coordinates to the resolved planes, or -1.
func (t *renderTargets) resolvedIndex(x, y int) int {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return -1
	}
	return (t.height-1-y)*t.width + x
}
