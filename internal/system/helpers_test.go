package system

import (
	"context"
	"errors"

	"github.com/teron/crusade/internal/data"
)

// memStore is an in-memory save.Store that counts writes.
type memStore struct {
	data    []byte
	writes  int
	saveErr error
}

func (m *memStore) Prepare(context.Context) error { return nil }

func (m *memStore) Load(context.Context) ([]byte, bool, error) {
	return m.data, m.data != nil, nil
}

func (m *memStore) Save(_ context.Context, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

var errDiskFull = errors.New("disk full")

func testCatalogs() (*data.ItemTable, *data.TileSetTable) {
	items := data.NewItemTable(
		data.ItemInfo{Name: "pickaxe", Sprite: "items/pickaxe/pickaxe.png"},
		data.ItemInfo{Name: "rope", Sprite: "items/rope/rope.png", StackSize: 64},
	)
	tileSets := data.NewTileSetTable(
		data.TileSetInfo{Name: "jungle_floor", Sheet: "tile_sets/overworld/jungle_floor.png", TileSize: 16, Columns: 5, Rows: 5},
	)
	return items, tileSets
}
