package system

import (
	"time"

	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/core/event"
	coresys "github.com/teron/crusade/internal/core/system"
	"github.com/teron/crusade/internal/data"
	"github.com/teron/crusade/internal/world"
	"go.uber.org/zap"
)

// PlayerSheet is the idle sheet the player entity starts with.
const PlayerSheet = "player/idle.png"

// SpawnSystem turns queued spawn requests into live entities. Requests that
// name an unknown item or tile set are logged and dropped; the rest of the
// queue is still processed. Phase 3 (PostUpdate).
type SpawnSystem struct {
	world      *world.State
	queues     *event.SpawnQueues
	items      *data.ItemTable
	tileSets   *data.TileSetTable
	log        *zap.Logger
	maxPerTick int // per queue, 0 = drain all

	spawned int
	dropped int
}

func NewSpawnSystem(ws *world.State, queues *event.SpawnQueues, items *data.ItemTable, tileSets *data.TileSetTable, log *zap.Logger, maxPerTick int) *SpawnSystem {
	return &SpawnSystem{
		world:      ws,
		queues:     queues,
		items:      items,
		tileSets:   tileSets,
		log:        log,
		maxPerTick: maxPerTick,
	}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *SpawnSystem) Update(_ time.Duration) {
	if s.queues.Pending() == 0 {
		return
	}
	before, droppedBefore := s.spawned, s.dropped
	s.queues.Blocks.Drain(s.maxPerTick, s.spawnBlock)
	s.queues.Items.Drain(s.maxPerTick, s.spawnItem)
	s.queues.Players.Drain(s.maxPerTick, s.spawnPlayer)

	s.log.Debug("spawn requests drained",
		zap.Int("spawned", s.spawned-before),
		zap.Int("dropped", s.dropped-droppedBefore),
		zap.Int("pending", s.queues.Pending()),
	)
}

// Pending returns the number of spawn requests not yet materialized.
func (s *SpawnSystem) Pending() int { return s.queues.Pending() }

// Flush materializes every queued request now, ignoring the per-tick cap.
func (s *SpawnSystem) Flush() {
	s.queues.Blocks.Drain(0, s.spawnBlock)
	s.queues.Items.Drain(0, s.spawnItem)
	s.queues.Players.Drain(0, s.spawnPlayer)
}

// Spawned returns how many entities this system has created.
func (s *SpawnSystem) Spawned() int { return s.spawned }

// Dropped returns how many requests were discarded as unresolvable.
func (s *SpawnSystem) Dropped() int { return s.dropped }

func (s *SpawnSystem) spawnBlock(r event.SpawnBlock) {
	ts := s.tileSets.Get(r.TileSet)
	if ts == nil {
		s.drop("tried to spawn block from undefined tile set",
			zap.String("tile_set", r.TileSet), zap.Int32("x", r.Pos.X), zap.Int32("y", r.Pos.Y))
		return
	}
	if r.TileIndex >= ts.Tiles() {
		s.drop("tried to spawn block with tile index outside its sheet",
			zap.String("tile_set", r.TileSet), zap.Uint64("tile_index", r.TileIndex), zap.Uint64("tiles", ts.Tiles()))
		return
	}

	half := float32(ts.TileSize) / 2
	if ts.TileSize <= 0 {
		half = component.TileSize / 2
	}
	x, y := r.Pos.World()
	s.world.AddBlock(
		component.Transform{X: x, Y: y, Scale: component.RenderScale},
		component.Block{TileSet: r.TileSet, TileIndex: r.TileIndex},
		component.Sprite{Atlas: ts.Sheet, Index: int(r.TileIndex)},
		component.Collider{HalfWidth: half, HalfHeight: half, Fixed: true},
	)
	s.spawned++
}

func (s *SpawnSystem) spawnItem(r event.SpawnItem) {
	info := s.items.Get(r.Name)
	if info == nil {
		s.drop("tried to spawn undefined item",
			zap.String("item", r.Name), zap.Int32("x", r.Pos.X), zap.Int32("y", r.Pos.Y))
		return
	}
	x, y := r.Pos.World()
	s.world.AddItem(
		component.Transform{X: x, Y: y, Scale: component.RenderScale},
		component.Item{Name: r.Name},
		component.Sprite{Atlas: info.Sprite},
	)
	s.spawned++
}

func (s *SpawnSystem) spawnPlayer(r event.SpawnPlayer) {
	x, y := r.Pos.World()
	s.world.AddPlayer(
		component.Transform{X: x, Y: y, Scale: component.RenderScale},
		component.Sprite{Atlas: PlayerSheet},
	)
	s.spawned++
}

func (s *SpawnSystem) drop(msg string, fields ...zap.Field) {
	s.dropped++
	s.log.Warn(msg, fields...)
}
