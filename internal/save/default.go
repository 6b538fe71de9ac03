package save

import "github.com/teron/crusade/internal/component"

// DefaultFunc produces the world used when no save exists yet.
type DefaultFunc func() (*WorldRecord, error)

const defaultTileSet = "jungle_floor"

// DefaultWorld is the built-in starting world: a 7x2 jungle-floor platform
// centred on the origin, a pickaxe and the player spawn above it.
func DefaultWorld() *WorldRecord {
	rec := NewWorldRecord(component.PixelPosition{X: 0, Y: 300})

	// Top row: left edge, five middles, right edge. The row below uses the
	// same pattern four sheet rows further down.
	for _, row := range []struct {
		y     int32
		first uint64
	}{{0, 0}, {-1, 20}} {
		for x := int32(-3); x <= 3; x++ {
			idx := row.first + 2
			switch x {
			case -3:
				idx = row.first
			case 3:
				idx = row.first + 4
			}
			rec.AddBlock(BlockRecord{
				TileSet:   defaultTileSet,
				TileIndex: idx,
				TilePos:   component.GridPosition{X: x, Y: row.y},
			})
		}
	}

	rec.AddItem(ItemRecord{ItemName: "pickaxe", Position: component.PixelPosition{X: 40, Y: 80}})
	return rec
}

// BuiltinDefault adapts DefaultWorld to DefaultFunc.
func BuiltinDefault() (*WorldRecord, error) {
	return DefaultWorld(), nil
}
