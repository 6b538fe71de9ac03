package world

import (
	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/core/ecs"
)

// State owns the live world: the ECS entity pool plus every component store
// the persistence engine and the spawn pipeline touch.
// Accessed only from the game loop goroutine, so no locks.
type State struct {
	ECS *ecs.World

	Transforms *ecs.Store[component.Transform]
	Sprites    *ecs.Store[component.Sprite]
	Colliders  *ecs.Store[component.Collider]

	// Tag stores. Capture walks these to find persisted entities.
	Blocks  *ecs.Store[component.Block]
	Items   *ecs.Store[component.Item]
	Players *ecs.Store[component.Player]
}

func NewState() *State {
	w := ecs.NewWorld()
	reg := w.Registry()
	return &State{
		ECS:        w,
		Transforms: ecs.Track[component.Transform](reg),
		Sprites:    ecs.Track[component.Sprite](reg),
		Colliders:  ecs.Track[component.Collider](reg),
		Blocks:     ecs.Track[component.Block](reg),
		Items:      ecs.Track[component.Item](reg),
		Players:    ecs.Track[component.Player](reg),
	}
}

// AddBlock creates a tile block entity.
func (s *State) AddBlock(tf component.Transform, b component.Block, sp component.Sprite, col component.Collider) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &tf)
	s.Blocks.Set(id, &b)
	s.Sprites.Set(id, &sp)
	s.Colliders.Set(id, &col)
	return id
}

// AddItem creates a world item entity.
func (s *State) AddItem(tf component.Transform, it component.Item, sp component.Sprite) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &tf)
	s.Items.Set(id, &it)
	s.Sprites.Set(id, &sp)
	return id
}

// AddPlayer creates a player entity. Callers are responsible for keeping
// a single player alive; Capture refuses to save otherwise.
func (s *State) AddPlayer(tf component.Transform, sp component.Sprite) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &tf)
	s.Players.Set(id, &component.Player{})
	s.Sprites.Set(id, &sp)
	return id
}

// Despawn queues an entity for removal at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	s.ECS.MarkForDestruction(id)
}

func (s *State) BlockCount() int  { return ecs.Count2(s.Transforms, s.Blocks) }
func (s *State) ItemCount() int   { return ecs.Count2(s.Transforms, s.Items) }
func (s *State) PlayerCount() int { return ecs.Count2(s.Transforms, s.Players) }
