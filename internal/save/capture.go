package save

import (
	"errors"
	"fmt"

	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/core/ecs"
	"github.com/teron/crusade/internal/world"
)

var (
	ErrNoPlayer        = errors.New("no player entity")
	ErrMultiplePlayers = errors.New("more than one player entity")
)

// PlayerCountError is returned by Capture when the world does not hold
// exactly one player.
type PlayerCountError struct {
	Count int
}

func (e *PlayerCountError) Error() string {
	return fmt.Sprintf("capture world: found %d player entities, need exactly 1", e.Count)
}

func (e *PlayerCountError) Unwrap() error {
	if e.Count == 0 {
		return ErrNoPlayer
	}
	return ErrMultiplePlayers
}

// Capture builds a WorldRecord from the live world. It only reads.
// Entities already marked for destruction this tick are left out.
//
// Entities that normalize to the same record key collapse into one entry:
// two items of the same name within the same pixel, or two blocks of the
// same tile in the same cell, are saved once.
func Capture(ws *world.State) (*WorldRecord, error) {
	var (
		players int
		spawn   component.PixelPosition
	)
	ecs.Each2(ws.Transforms, ws.Players, func(id ecs.EntityID, tf *component.Transform, _ *component.Player) {
		if ws.ECS.Doomed(id) {
			return
		}
		players++
		spawn = component.PixelFromWorld(tf.X, tf.Y)
	})
	if players != 1 {
		return nil, &PlayerCountError{Count: players}
	}

	rec := NewWorldRecord(spawn)
	ecs.Each2(ws.Transforms, ws.Blocks, func(id ecs.EntityID, tf *component.Transform, b *component.Block) {
		if ws.ECS.Doomed(id) {
			return
		}
		rec.AddBlock(BlockRecord{
			TileSet:   b.TileSet,
			TileIndex: b.TileIndex,
			TilePos:   component.GridFromWorld(tf.X, tf.Y),
		})
	})
	ecs.Each2(ws.Transforms, ws.Items, func(id ecs.EntityID, tf *component.Transform, it *component.Item) {
		if ws.ECS.Doomed(id) {
			return
		}
		rec.AddItem(ItemRecord{
			ItemName: it.Name,
			Position: component.PixelFromWorld(tf.X, tf.Y),
		})
	})
	return rec, nil
}
