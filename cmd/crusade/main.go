package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/teron/crusade/internal/config"
	"github.com/teron/crusade/internal/core/event"
	coresys "github.com/teron/crusade/internal/core/system"
	"github.com/teron/crusade/internal/data"
	"github.com/teron/crusade/internal/persist"
	"github.com/teron/crusade/internal/save"
	"github.com/teron/crusade/internal/scripting"
	"github.com/teron/crusade/internal/system"
	"github.com/teron/crusade/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string) {
	fmt.Println()
	fmt.Printf("  \033[36;1m%s\033[0m\n", title)
	fmt.Println("  \033[90mworld persistence engine\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/crusade.toml"
	if p := os.Getenv("CRUSADE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Title)

	// 3. Catalogs
	printSection("Catalogs")
	items, err := data.LoadItemTable(cfg.Catalog.Items)
	if err != nil {
		return fmt.Errorf("item catalog: %w", err)
	}
	printStat("items", items.Count())
	tileSets, err := data.LoadTileSetTable(cfg.Catalog.TileSets)
	if err != nil {
		return fmt.Errorf("tile set catalog: %w", err)
	}
	printStat("tile sets", tileSets.Count())
	fmt.Println()

	// 4. Save store
	printSection("Save")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store save.Store
	switch cfg.Save.Backend {
	case config.BackendPostgres:
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		store = persist.NewSaveRepo(db)
		printOK("PostgreSQL save store")
	default:
		fs := save.NewFileStore(cfg.Save.Root)
		store = fs
		printOK("file save store " + fs.Path())
	}

	defaults := save.DefaultFunc(save.BuiltinDefault)
	if cfg.Save.DefaultWorldScript != "" {
		eng, err := scripting.NewEngine(log, cfg.Save.DefaultWorldScript)
		if err != nil {
			return fmt.Errorf("default world script: %w", err)
		}
		defer eng.Close()
		defaults = eng.DefaultWorld
		printOK("default world script " + cfg.Save.DefaultWorldScript)
	}

	// 5. Bootstrap: load or generate, then queue everything for spawning
	rec, err := save.Bootstrap(ctx, store, defaults, log)
	if err != nil {
		return err
	}
	queues := event.NewSpawnQueues()
	n := save.PublishSpawns(rec, queues)
	printStat("blocks", len(rec.Blocks))
	printStat("items", len(rec.Items))
	printStat("spawn requests", n)
	fmt.Println()

	// 6. Systems
	ws := world.NewState()
	bus := event.NewBus()
	spawner := system.NewSpawnSystem(ws, queues, items, tileSets, log, cfg.Spawn.MaxPerTick)
	autosave := system.NewAutosaveSystem(ws, spawner, store, bus, log, cfg.Save.AutosaveInterval, cfg.Save.SkipUnchanged)

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(spawner)
	runner.Register(autosave)
	runner.Register(system.NewCleanupSystem(ws))

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	log.Info("game loop started",
		zap.Duration("tick", cfg.Game.TickRate),
		zap.Duration("autosave_interval", cfg.Save.AutosaveInterval),
	)

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Game.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			// One more tick delivers AppExit; autosave writes before we return.
			event.Emit(bus, event.AppExit{Reason: sig.String()})
			runner.Tick(cfg.Game.TickRate)
			log.Info("stopped", zap.Int("saves_written", autosave.Writes()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
