package component

// TileSize is the edge length of one tile in source-sheet pixels.
const TileSize = 16

// RenderScale is the global sprite scale applied to every world sprite.
const RenderScale = 2.5

// GridPosition is a block position in tile-grid units.
type GridPosition struct {
	X int32
	Y int32
}

// PixelPosition is a world position in pixels, truncated to integers.
type PixelPosition struct {
	X int32
	Y int32
}

// World converts a grid cell to the world-pixel translation of its centre.
func (g GridPosition) World() (x, y float32) {
	return float32(g.X) * TileSize * RenderScale, float32(g.Y) * TileSize * RenderScale
}

// GridFromWorld converts a world translation back to a grid cell.
// Truncates toward zero.
func GridFromWorld(x, y float32) GridPosition {
	return GridPosition{
		X: int32(x / TileSize / RenderScale),
		Y: int32(y / TileSize / RenderScale),
	}
}

func (p PixelPosition) World() (x, y float32) {
	return float32(p.X), float32(p.Y)
}

// PixelFromWorld truncates a world translation to integer pixels.
func PixelFromWorld(x, y float32) PixelPosition {
	return PixelPosition{X: int32(x), Y: int32(y)}
}
