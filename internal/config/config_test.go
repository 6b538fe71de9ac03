package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "crusade.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[save]
root = "/tmp/saves"
autosave_interval = "1m"

[spawn]
max_per_tick = 8
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Save.Root != "/tmp/saves" || cfg.Save.AutosaveInterval != time.Minute {
		t.Fatalf("save = %+v", cfg.Save)
	}
	if cfg.Spawn.MaxPerTick != 8 {
		t.Fatalf("spawn = %+v", cfg.Spawn)
	}
	// Untouched keys keep their defaults.
	if cfg.Save.Backend != BackendFile || !cfg.Save.SkipUnchanged {
		t.Fatalf("save defaults lost: %+v", cfg.Save)
	}
	if cfg.Game.TickRate != 16*time.Millisecond {
		t.Fatalf("tick rate = %v", cfg.Game.TickRate)
	}
}

func TestDefaultAutosaveIntervalIsFiveMinutes(t *testing.T) {
	if got := Defaults().Save.AutosaveInterval; got != 300*time.Second {
		t.Fatalf("autosave interval = %v", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"backend":  "[save]\nbackend = \"s3\"\n",
		"interval": "[save]\nautosave_interval = \"0s\"\n",
		"syntax":   "[save\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("Load succeeded")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v", err)
	}
}
