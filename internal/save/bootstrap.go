package save

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Bootstrap loads the saved world, or builds the default world and saves it
// before returning. It runs once, before any world entity exists.
// Every error is fatal to the caller.
func Bootstrap(ctx context.Context, store Store, defaults DefaultFunc, log *zap.Logger) (*WorldRecord, error) {
	if err := store.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("prepare save store: %w", err)
	}

	data, found, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load world save: %w", err)
	}
	if found {
		rec, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("world save: %w", err)
		}
		log.Info("world save loaded",
			zap.Int("blocks", len(rec.Blocks)),
			zap.Int("items", len(rec.Items)),
			zap.Int("bytes", len(data)),
		)
		return rec, nil
	}

	rec, err := defaults()
	if err != nil {
		return nil, fmt.Errorf("build default world: %w", err)
	}
	data, err = Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("default world: %w", err)
	}
	if err := store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("write default world: %w", err)
	}
	log.Info("default world created",
		zap.Int("blocks", len(rec.Blocks)),
		zap.Int("items", len(rec.Items)),
	)
	return rec, nil
}
