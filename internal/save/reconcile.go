package save

import "github.com/teron/crusade/internal/core/event"

// PublishSpawns queues one spawn request per block and item in rec plus one
// player spawn. It does not touch the world; SpawnSystem materializes the
// requests on later ticks. Returns the number of requests queued.
func PublishSpawns(rec *WorldRecord, q *event.SpawnQueues) int {
	n := 0
	for _, b := range rec.SortedBlocks() {
		q.Blocks.Push(event.SpawnBlock{TileSet: b.TileSet, TileIndex: b.TileIndex, Pos: b.TilePos})
		n++
	}
	for _, it := range rec.SortedItems() {
		q.Items.Push(event.SpawnItem{Name: it.ItemName, Pos: it.Position})
		n++
	}
	q.Players.Push(event.SpawnPlayer{Pos: rec.PlayerSpawn})
	return n + 1
}
