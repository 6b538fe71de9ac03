package world

import (
	"testing"

	"github.com/teron/crusade/internal/component"
)

func TestStateCountsAndDespawn(t *testing.T) {
	s := NewState()
	b := s.AddBlock(component.Transform{}, component.Block{TileSet: "jungle_floor"}, component.Sprite{}, component.Collider{})
	s.AddItem(component.Transform{}, component.Item{Name: "pickaxe"}, component.Sprite{})
	s.AddPlayer(component.Transform{}, component.Sprite{})

	if s.BlockCount() != 1 || s.ItemCount() != 1 || s.PlayerCount() != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", s.BlockCount(), s.ItemCount(), s.PlayerCount())
	}

	s.Despawn(b)
	s.ECS.FlushDestroyQueue()
	if s.BlockCount() != 0 {
		t.Fatalf("block survived despawn")
	}
	if s.Sprites.Has(b) || s.Colliders.Has(b) {
		t.Fatalf("components of despawned block remain")
	}
}
