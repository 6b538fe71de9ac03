package save

import (
	"errors"
	"testing"

	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/world"
)

// populate materializes rec directly, the way SpawnSystem would.
func populate(ws *world.State, rec *WorldRecord) {
	for b := range rec.Blocks {
		x, y := b.TilePos.World()
		ws.AddBlock(component.Transform{X: x, Y: y, Scale: component.RenderScale},
			component.Block{TileSet: b.TileSet, TileIndex: b.TileIndex}, component.Sprite{}, component.Collider{})
	}
	for it := range rec.Items {
		x, y := it.Position.World()
		ws.AddItem(component.Transform{X: x, Y: y}, component.Item{Name: it.ItemName}, component.Sprite{})
	}
	x, y := rec.PlayerSpawn.World()
	ws.AddPlayer(component.Transform{X: x, Y: y}, component.Sprite{})
}

func TestCaptureRestoresPopulatedWorld(t *testing.T) {
	ws := world.NewState()
	populate(ws, DefaultWorld())

	rec, err := Capture(ws)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !rec.Equal(DefaultWorld()) {
		t.Fatalf("captured record differs from the populated one")
	}
}

func TestCaptureIsIdempotent(t *testing.T) {
	ws := world.NewState()
	populate(ws, DefaultWorld())

	a, err := Capture(ws)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Capture(ws)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("back-to-back captures differ")
	}
}

func TestCaptureConvertsPositions(t *testing.T) {
	ws := world.NewState()
	ws.AddPlayer(component.Transform{X: 12.9, Y: -300.6}, component.Sprite{})
	// 85/40 = 2.125 and -41/40 = -1.025, both truncated toward zero.
	ws.AddBlock(component.Transform{X: 85, Y: -41}, component.Block{TileSet: "jungle_floor", TileIndex: 2}, component.Sprite{}, component.Collider{})
	ws.AddItem(component.Transform{X: 40.7, Y: 80.2}, component.Item{Name: "pickaxe"}, component.Sprite{})

	rec, err := Capture(ws)
	if err != nil {
		t.Fatal(err)
	}
	if rec.PlayerSpawn != (component.PixelPosition{X: 12, Y: -300}) {
		t.Fatalf("spawn = %v", rec.PlayerSpawn)
	}
	wantBlock := BlockRecord{TileSet: "jungle_floor", TileIndex: 2, TilePos: component.GridPosition{X: 2, Y: -1}}
	if _, ok := rec.Blocks[wantBlock]; !ok {
		t.Fatalf("blocks = %v, want %v", rec.Blocks, wantBlock)
	}
	wantItem := ItemRecord{ItemName: "pickaxe", Position: component.PixelPosition{X: 40, Y: 80}}
	if _, ok := rec.Items[wantItem]; !ok {
		t.Fatalf("items = %v, want %v", rec.Items, wantItem)
	}
}

func TestCaptureCollapsesEntitiesWithTheSameKey(t *testing.T) {
	ws := world.NewState()
	ws.AddPlayer(component.Transform{}, component.Sprite{})
	// Both land in cell (0, 0).
	ws.AddBlock(component.Transform{X: 1}, component.Block{TileSet: "jungle_floor", TileIndex: 2}, component.Sprite{}, component.Collider{})
	ws.AddBlock(component.Transform{X: 30}, component.Block{TileSet: "jungle_floor", TileIndex: 2}, component.Sprite{}, component.Collider{})
	// Both truncate to pixel (40, 80).
	ws.AddItem(component.Transform{X: 40.1, Y: 80}, component.Item{Name: "pickaxe"}, component.Sprite{})
	ws.AddItem(component.Transform{X: 40.9, Y: 80}, component.Item{Name: "pickaxe"}, component.Sprite{})

	rec, err := Capture(ws)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Blocks) != 1 || len(rec.Items) != 1 {
		t.Fatalf("blocks=%d items=%d, want 1 and 1", len(rec.Blocks), len(rec.Items))
	}
}

func TestCaptureRequiresExactlyOnePlayer(t *testing.T) {
	none := world.NewState()
	_, err := Capture(none)
	if !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("no player: err = %v", err)
	}

	two := world.NewState()
	two.AddPlayer(component.Transform{}, component.Sprite{})
	two.AddPlayer(component.Transform{X: 5}, component.Sprite{})
	_, err = Capture(two)
	if !errors.Is(err, ErrMultiplePlayers) {
		t.Fatalf("two players: err = %v", err)
	}
	var pcErr *PlayerCountError
	if !errors.As(err, &pcErr) || pcErr.Count != 2 {
		t.Fatalf("err = %v, want PlayerCountError{2}", err)
	}
}

func TestCaptureSkipsEntitiesMarkedForDestruction(t *testing.T) {
	ws := world.NewState()
	ws.AddPlayer(component.Transform{}, component.Sprite{})
	keep := ws.AddBlock(component.Transform{X: 40}, component.Block{TileSet: "jungle_floor"}, component.Sprite{}, component.Collider{})
	gone := ws.AddBlock(component.Transform{X: 80}, component.Block{TileSet: "jungle_floor"}, component.Sprite{}, component.Collider{})
	picked := ws.AddItem(component.Transform{X: 5, Y: 5}, component.Item{Name: "pickaxe"}, component.Sprite{})

	ws.Despawn(gone)
	ws.Despawn(picked)

	rec, err := Capture(ws)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(rec.Blocks) != 1 || len(rec.Items) != 0 {
		t.Fatalf("captured %d blocks, %d items; want 1, 0", len(rec.Blocks), len(rec.Items))
	}
	if _, ok := rec.Blocks[BlockRecord{TileSet: "jungle_floor", TilePos: component.GridPosition{X: 1}}]; !ok {
		t.Fatalf("surviving block %v missing from %v", keep, rec.Blocks)
	}
}

func TestCaptureIgnoresDoomedSecondPlayer(t *testing.T) {
	ws := world.NewState()
	ws.AddPlayer(component.Transform{}, component.Sprite{})
	old := ws.AddPlayer(component.Transform{X: 100}, component.Sprite{})
	ws.Despawn(old)

	if _, err := Capture(ws); err != nil {
		t.Fatalf("Capture with one live player: %v", err)
	}
}
