package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// SaveSlot is the only row the save repo reads or writes.
const SaveSlot = "world0"

// querier is the subset of *pgxpool.Pool the repo uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectSaveSQL = `SELECT data FROM world_saves WHERE slot = $1`
	upsertSaveSQL = `INSERT INTO world_saves (slot, data, saved_at) VALUES ($1, $2, now())
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, saved_at = EXCLUDED.saved_at`
)

// SaveRepo keeps the encoded world record in the world_saves table. It
// satisfies save.Store.
type SaveRepo struct {
	q       querier
	migrate func(ctx context.Context) error
	log     *zap.Logger
}

func NewSaveRepo(db *DB) *SaveRepo {
	return &SaveRepo{
		q: db.Pool,
		migrate: func(ctx context.Context) error {
			return RunMigrations(ctx, db.Pool, db.log)
		},
		log: db.log,
	}
}

// Prepare applies pending migrations so the world_saves table exists.
func (r *SaveRepo) Prepare(ctx context.Context) error {
	if err := r.migrate(ctx); err != nil {
		return err
	}
	r.log.Debug("world_saves schema ready")
	return nil
}

func (r *SaveRepo) Load(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := r.q.QueryRow(ctx, selectSaveSQL, SaveSlot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select world save: %w", err)
	}
	return data, true, nil
}

// Save upserts the slot in a single statement; a failed write leaves the
// previous row in place.
func (r *SaveRepo) Save(ctx context.Context, data []byte) error {
	tag, err := r.q.Exec(ctx, upsertSaveSQL, SaveSlot, data)
	if err != nil {
		return fmt.Errorf("upsert world save: %w", err)
	}
	r.log.Debug("world save row written",
		zap.Int64("rows", tag.RowsAffected()),
		zap.Int("bytes", len(data)),
	)
	return nil
}
