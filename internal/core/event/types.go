package event

import "github.com/teron/crusade/internal/component"

// AppExit is emitted by the host once it has decided to shut down. Systems
// that must run before exit subscribe to it; the host runs one more tick
// after emitting.
type AppExit struct {
	Reason string
}

// SpawnBlock asks for one tile block at a grid cell.
type SpawnBlock struct {
	TileSet   string
	TileIndex uint64
	Pos       component.GridPosition
}

// SpawnItem asks for one world item at a pixel position.
type SpawnItem struct {
	Name string
	Pos  component.PixelPosition
}

// SpawnPlayer asks for the player entity at its spawn point.
type SpawnPlayer struct {
	Pos component.PixelPosition
}

// SpawnQueues groups the spawn request queues shared by the save loader
// (producer) and the spawn system (consumer).
type SpawnQueues struct {
	Blocks  Queue[SpawnBlock]
	Items   Queue[SpawnItem]
	Players Queue[SpawnPlayer]
}

func NewSpawnQueues() *SpawnQueues {
	return &SpawnQueues{}
}

// Pending returns the number of undrained requests across all queues.
func (q *SpawnQueues) Pending() int {
	return q.Blocks.Len() + q.Items.Len() + q.Players.Len()
}
