package save

import (
	"sort"

	"github.com/teron/crusade/internal/component"
)

// BlockRecord is one persisted tile block. Two records are the same block
// iff tile set, tile index and grid cell are all equal.
type BlockRecord struct {
	TileSet   string
	TileIndex uint64
	TilePos   component.GridPosition
}

// ItemRecord is one persisted world item at an integer pixel position.
type ItemRecord struct {
	ItemName string
	Position component.PixelPosition
}

// WorldRecord is the serializable snapshot of the persisted world. Blocks
// and Items are sets: the record structs are the keys, so structural
// duplicates collapse on insert.
//
// A WorldRecord is transient. It is built once at bootstrap and once per
// save, then dropped; the live entities own world state in between.
type WorldRecord struct {
	PlayerSpawn component.PixelPosition
	Blocks      map[BlockRecord]struct{}
	Items       map[ItemRecord]struct{}
}

func NewWorldRecord(spawn component.PixelPosition) *WorldRecord {
	return &WorldRecord{
		PlayerSpawn: spawn,
		Blocks:      make(map[BlockRecord]struct{}),
		Items:       make(map[ItemRecord]struct{}),
	}
}

// AddBlock inserts b and reports whether it was not already present.
func (r *WorldRecord) AddBlock(b BlockRecord) bool {
	if _, ok := r.Blocks[b]; ok {
		return false
	}
	r.Blocks[b] = struct{}{}
	return true
}

// AddItem inserts it and reports whether it was not already present.
func (r *WorldRecord) AddItem(it ItemRecord) bool {
	if _, ok := r.Items[it]; ok {
		return false
	}
	r.Items[it] = struct{}{}
	return true
}

// SortedBlocks returns the blocks ordered by tile set, index, row, column.
func (r *WorldRecord) SortedBlocks() []BlockRecord {
	out := make([]BlockRecord, 0, len(r.Blocks))
	for b := range r.Blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TileSet != b.TileSet {
			return a.TileSet < b.TileSet
		}
		if a.TileIndex != b.TileIndex {
			return a.TileIndex < b.TileIndex
		}
		if a.TilePos.Y != b.TilePos.Y {
			return a.TilePos.Y < b.TilePos.Y
		}
		return a.TilePos.X < b.TilePos.X
	})
	return out
}

// SortedItems returns the items ordered by name, row, column.
func (r *WorldRecord) SortedItems() []ItemRecord {
	out := make([]ItemRecord, 0, len(r.Items))
	for it := range r.Items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ItemName != b.ItemName {
			return a.ItemName < b.ItemName
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		return a.Position.X < b.Position.X
	})
	return out
}

// Equal reports set equality of blocks and items plus an equal spawn.
func (r *WorldRecord) Equal(o *WorldRecord) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.PlayerSpawn != o.PlayerSpawn || len(r.Blocks) != len(o.Blocks) || len(r.Items) != len(o.Items) {
		return false
	}
	for b := range r.Blocks {
		if _, ok := o.Blocks[b]; !ok {
			return false
		}
	}
	for it := range r.Items {
		if _, ok := o.Items[it]; !ok {
			return false
		}
	}
	return true
}
