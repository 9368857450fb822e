package parallel

import "image"

// TileGrid divides a render target into tiles and bins triangles into them.
//
// Tiles are stored in a flat row-major slice: index = ty * tilesX + tx.
//
// Thread safety: TileGrid is NOT thread-safe.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a tile grid covering a width x height target.
// Non-positive dimensions produce an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{}
	g.Resize(width, height)
	return g
}

// Resize changes the grid dimensions. Bins are emptied.
// If dimensions haven't changed, only the bins are reset.
func (g *TileGrid) Resize(width, height int) {
	if width == g.width && height == g.height {
		g.Reset()
		return
	}
	if width <= 0 || height <= 0 {
		*g = TileGrid{}
		return
	}

	g.width, g.height = width, height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			g.tiles[ty*g.tilesX+tx] = &Tile{
				X:      tx,
				Y:      ty,
				Width:  min(TileWidth, width-tx*TileWidth),
				Height: min(TileHeight, height-ty*TileHeight),
			}
		}
	}
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// TilesInRect returns all tiles intersecting the half-open pixel rectangle r.
// Returns nil if r lies completely outside the target.
func (g *TileGrid) TilesInRect(r image.Rectangle) []*Tile {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return nil
	}

	tx1, ty1 := r.Min.X/TileWidth, r.Min.Y/TileHeight
	tx2, ty2 := (r.Max.X-1)/TileWidth, (r.Max.Y-1)/TileHeight

	result := make([]*Tile, 0, (tx2-tx1+1)*(ty2-ty1+1))
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			result = append(result, g.tiles[ty*g.tilesX+tx])
		}
	}
	return result
}

// Bin appends triangle index tri to every tile intersecting r.
// Triangles must be binned in submission order.
// Returns the number of tiles touched.
func (g *TileGrid) Bin(tri int, r image.Rectangle) int {
	tiles := g.TilesInRect(r)
	for _, t := range tiles {
		t.Triangles = append(t.Triangles, tri)
	}
	return len(tiles)
}

// Reset empties every bin.
func (g *TileGrid) Reset() {
	for _, t := range g.tiles {
		t.Reset()
	}
}

// Occupied returns the tiles holding at least one triangle, in row-major
// order.
func (g *TileGrid) Occupied() []*Tile {
	var result []*Tile
	for _, t := range g.tiles {
		if !t.Empty() {
			result = append(result, t)
		}
	}
	return result
}
