// Package parallel provides tile-based parallel rasterization infrastructure
// for rast.
//
// The render target is divided into 64x64 pixel tiles. Every triangle is
// binned into the tiles its bounding box touches, then each tile
// rasterizes its bin on its own goroutine. A tile owns every pixel inside
// it, so no two goroutines write the same sample.
//
// Tile sizes are even, so the 2x2 pixel quads the rasterizer shades never
// straddle two tiles.
//
// Thread safety: TileGrid operations are NOT thread-safe. Binning happens
// on one goroutine; tiles are then handed to the WorkerPool.
package parallel

import "image"

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the total number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight
)

// Tile is a rectangular region of the render target together with the
// triangles that may cover it.
//
// Edge tiles have smaller dimensions when the target is not evenly
// divisible by the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileWidth for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileHeight for edge tiles).
	Height int

	// Triangles holds the binned triangle indices in submission order.
	Triangles []int
}

// Reset empties the bin, keeping its capacity.
func (t *Tile) Reset() {
	t.Triangles = t.Triangles[:0]
}

// Empty reports whether no triangle was binned into the tile.
func (t *Tile) Empty() bool {
	return len(t.Triangles) == 0
}

// Bounds returns the pixel bounds of this tile in target space.
// Returns (x, y, width, height) where x,y is the top-left corner.
func (t *Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// Rect returns the tile's pixels as a half-open rectangle.
func (t *Tile) Rect() image.Rectangle {
	x, y, w, h := t.Bounds()
	return image.Rect(x, y, x+w, y+h)
}
