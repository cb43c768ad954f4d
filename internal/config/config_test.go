package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Storage.DataDir != "~/.pomo" {
		t.Errorf("expected default data dir ~/.pomo, got %q", cfg.Storage.DataDir)
	}
	if cfg.Theme.IconApp == "" {
		t.Error("expected a default app icon")
	}
}

func TestLoad_FirstRunCreatesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.DataDir != filepath.Join(home, ".pomo") {
		t.Errorf("expected expanded data dir, got %q", cfg.Storage.DataDir)
	}

	if _, err := os.Stat(filepath.Join(home, ".pomo", "config.toml")); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestGetDBPath(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataDir: "/data/pomo"}}
	if got := GetDBPath(cfg); got != "/data/pomo/pomo.db" {
		t.Errorf("GetDBPath() = %q", got)
	}
}
