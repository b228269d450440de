package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/khodemetamir/Reversi/engine"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppConfigReadsFile(t *testing.T) {
	path := writeConfigFile(t, `
addr: ":9090"
tick_ms: 20
game:
  difficulty: hard
  human_color: white
engine:
  depth: 5
  endgame_empty: 10
  use_opening_book: false
  tt_size: 1024
  tt_buckets: 2
`)
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.TickMs != 20 {
		t.Fatalf("unexpected server settings %+v", cfg)
	}
	if cfg.Game.Difficulty != "hard" || cfg.Game.HumanColor != "white" {
		t.Fatalf("unexpected game settings %+v", cfg.Game)
	}
	want := engine.Config{Depth: 5, EndgameEmpty: 10, TTSize: 1024, TTBuckets: 2}
	if cfg.Engine != want {
		t.Fatalf("expected engine config %+v, got %+v", want, cfg.Engine)
	}
}

func TestLoadAppConfigDefaultsWithoutFile(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.TickMs != 50 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Engine != engine.DefaultConfig() {
		t.Fatalf("expected default engine config, got %+v", cfg.Engine)
	}
}

func TestLoadAppConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "engine:\n  depth: 5\n")
	t.Setenv("REVERSI_ENGINE_DEPTH", "7")
	t.Setenv("REVERSI_ADDR", ":7070")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.Depth != 7 {
		t.Fatalf("expected env depth 7, got %d", cfg.Engine.Depth)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
}

func TestLoadAppConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"difficulty": "game:\n  difficulty: impossible\n",
		"seat":       "game:\n  human_color: purple\n",
		"depth":      "engine:\n  depth: 0\n",
		"tick":       "tick_ms: 0\n",
	}
	for name, body := range cases {
		if _, err := LoadAppConfig(writeConfigFile(t, body)); err == nil {
			t.Fatalf("expected %s config to be rejected", name)
		}
	}
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing explicit config file to fail")
	}
}

func TestApplyDifficultyKeepsTableSettings(t *testing.T) {
	base := engine.DefaultConfig()
	base.TTSize = 256
	base.TTBuckets = 2
	base.LogSearchStats = true
	store := NewConfigStore(base)

	got := store.ApplyDifficulty(engine.DifficultyExpert)
	if got.Depth != engine.DifficultyExpert.Config().Depth {
		t.Fatalf("expected expert depth, got %d", got.Depth)
	}
	if got.TTSize != 256 || got.TTBuckets != 2 || !got.LogSearchStats {
		t.Fatalf("expected table settings to survive, got %+v", got)
	}
	if store.Get() != got {
		t.Fatalf("expected store to hold the applied config")
	}
}
