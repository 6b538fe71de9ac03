package system

import (
	"context"
	"testing"
	"time"

	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/core/ecs"
	"github.com/teron/crusade/internal/core/event"
	coresys "github.com/teron/crusade/internal/core/system"
	"github.com/teron/crusade/internal/save"
	"github.com/teron/crusade/internal/world"
	"go.uber.org/zap"
)

// session runs one process lifetime against root: bootstrap, spawn, let
// play mutate the world, then exit.
func session(t *testing.T, root string, play func(ws *world.State)) *save.WorldRecord {
	t.Helper()
	store := save.NewFileStore(root)
	rec, err := save.Bootstrap(context.Background(), store, save.BuiltinDefault, zap.NewNop())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	ws := world.NewState()
	bus := event.NewBus()
	queues := event.NewSpawnQueues()
	save.PublishSpawns(rec, queues)

	items, tileSets := testCatalogs()
	runner := coresys.NewRunner()
	runner.Register(NewEventDispatchSystem(bus))
	spawner := NewSpawnSystem(ws, queues, items, tileSets, zap.NewNop(), 0)
	runner.Register(spawner)
	runner.Register(NewAutosaveSystem(ws, spawner, store, bus, zap.NewNop(), time.Hour, true))
	runner.Register(NewCleanupSystem(ws))

	runner.Tick(time.Millisecond)
	if play != nil {
		play(ws)
	}
	event.Emit(bus, event.AppExit{Reason: "test"})
	runner.Tick(time.Millisecond)
	return rec
}

func TestWorldSurvivesRestart(t *testing.T) {
	root := t.TempDir()

	first := session(t, root, func(ws *world.State) {
		// Carry the pickaxe somewhere else and knock out one floor block.
		ws.Items.Each(func(id ecs.EntityID, _ *component.Item) {
			tf, _ := ws.Transforms.Get(id)
			tf.X, tf.Y = -200.6, 45.2
		})
		ws.Blocks.Each(func(id ecs.EntityID, b *component.Block) {
			tf, _ := ws.Transforms.Get(id)
			if g := component.GridFromWorld(tf.X, tf.Y); g == (component.GridPosition{X: 3, Y: 0}) {
				ws.Despawn(id)
			}
		})
		ws.ECS.FlushDestroyQueue()
	})
	if !first.Equal(save.DefaultWorld()) {
		t.Fatal("first session did not start from the default world")
	}

	second := session(t, root, nil)
	if len(second.Blocks) != 13 {
		t.Fatalf("blocks = %d, want 13", len(second.Blocks))
	}
	want := save.ItemRecord{ItemName: "pickaxe", Position: component.PixelPosition{X: -200, Y: 45}}
	if _, ok := second.Items[want]; !ok || len(second.Items) != 1 {
		t.Fatalf("items = %v, want only %+v", second.Items, want)
	}
	if second.PlayerSpawn != (component.PixelPosition{X: 0, Y: 300}) {
		t.Fatalf("spawn = %v", second.PlayerSpawn)
	}

	third := session(t, root, nil)
	if !third.Equal(second) {
		t.Fatal("untouched session changed the saved world")
	}
}
