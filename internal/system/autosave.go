package system

import (
	"context"
	"time"

	"github.com/teron/crusade/internal/core/event"
	coresys "github.com/teron/crusade/internal/core/system"
	"github.com/teron/crusade/internal/save"
	"github.com/teron/crusade/internal/world"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// SpawnBacklog is the part of the spawn pipeline autosave has to respect:
// a world with requests still queued is only partly built.
type SpawnBacklog interface {
	Pending() int
	Flush()
}

// Autosave triggers, used in logs.
const (
	TriggerPeriodic = "periodic"
	TriggerExit     = "exit"
)

// AutosaveSystem captures the live world and writes it to the save store
// every interval and once more when the app exits. Phase 5 (Persist).
//
// A failed cycle is logged and abandoned; the store keeps the previous save
// and the next trigger tries again from scratch. Periodic saves wait until
// the spawn backlog is empty; the exit save flushes it first.
type AutosaveSystem struct {
	world    *world.State
	spawns   SpawnBacklog
	store    save.Store
	log      *zap.Logger
	interval time.Duration
	elapsed  time.Duration

	exitRequested bool

	skipUnchanged bool
	lastDigest    [blake2b.Size256]byte
	hasDigest     bool
	writes        int
}

// NewAutosaveSystem wires the system to the world it captures. spawns may be
// nil when the world is populated directly.
func NewAutosaveSystem(ws *world.State, spawns SpawnBacklog, store save.Store, bus *event.Bus, log *zap.Logger, interval time.Duration, skipUnchanged bool) *AutosaveSystem {
	s := &AutosaveSystem{
		world:         ws,
		spawns:        spawns,
		store:         store,
		log:           log,
		interval:      interval,
		skipUnchanged: skipUnchanged,
	}
	event.Subscribe(bus, func(event.AppExit) { s.exitRequested = true })
	return s
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(dt time.Duration) {
	if s.exitRequested {
		s.exitRequested = false
		if n := s.pending(); n > 0 {
			s.log.Info("flushing spawn backlog before exit save", zap.Int("pending", n))
			s.spawns.Flush()
		}
		s.SaveNow(TriggerExit)
		return
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	// Keep the elapsed time so the save runs on the first tick after the
	// backlog drains.
	if n := s.pending(); n > 0 {
		s.log.Debug("autosave deferred, spawn requests pending", zap.Int("pending", n))
		return
	}
	s.elapsed = 0
	s.SaveNow(TriggerPeriodic)
}

func (s *AutosaveSystem) pending() int {
	if s.spawns == nil {
		return 0
	}
	return s.spawns.Pending()
}

// Writes returns how many times the store has been written successfully.
func (s *AutosaveSystem) Writes() int { return s.writes }

// SaveNow runs one capture → encode → write cycle and reports whether the
// world is now durably saved. Errors are logged here, not returned.
func (s *AutosaveSystem) SaveNow(trigger string) bool {
	if n := s.pending(); n > 0 {
		s.log.Warn("autosave skipped, world not fully spawned",
			zap.String("trigger", trigger), zap.Int("pending", n))
		return false
	}
	rec, err := save.Capture(s.world)
	if err != nil {
		s.log.Error("autosave skipped", zap.String("trigger", trigger), zap.Error(err))
		return false
	}
	data, err := save.Encode(rec)
	if err != nil {
		s.log.Error("autosave encode failed", zap.String("trigger", trigger), zap.Error(err))
		return false
	}

	digest := blake2b.Sum256(data)
	if s.skipUnchanged && s.hasDigest && digest == s.lastDigest {
		s.log.Debug("autosave unchanged, write skipped", zap.String("trigger", trigger))
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, data); err != nil {
		s.log.Error("autosave write failed", zap.String("trigger", trigger), zap.Error(err))
		return false
	}

	s.lastDigest, s.hasDigest = digest, true
	s.writes++
	s.log.Info("world saved",
		zap.String("trigger", trigger),
		zap.Int("blocks", len(rec.Blocks)),
		zap.Int("items", len(rec.Items)),
		zap.Int("bytes", len(data)),
	)
	return true
}
