package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if cfg.Render.GridWarnSize != 200 {
		t.Errorf("expected grid warn size 200, got %d", cfg.Render.GridWarnSize)
	}
	if cfg.Color.Smoothing <= 0 || cfg.Color.Smoothing > 1 {
		t.Errorf("smoothing out of range: %f", cfg.Color.Smoothing)
	}
	if cfg.Color.Alpha != 0.8 {
		t.Errorf("expected alpha 0.8, got %f", cfg.Color.Alpha)
	}
	if cfg.Legend.PreviewLimit != 8 || cfg.Legend.DisplayLimit != 20 {
		t.Errorf("unexpected legend limits: %+v", cfg.Legend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fibmod.yaml")
	doc := []byte("solver: ./bin/fibonacci_mod\nrender:\n  grid_warn_size: 500\n")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Solver != "./bin/fibonacci_mod" {
		t.Errorf("expected solver override, got %s", cfg.Solver)
	}
	if cfg.Render.GridWarnSize != 500 {
		t.Errorf("expected grid warn size 500, got %d", cfg.Render.GridWarnSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Render.PixelsPerCell != DefaultPixelsPerCell {
		t.Errorf("expected default pixels per cell, got %d", cfg.Render.PixelsPerCell)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fibmod.yaml")

	cfg := DefaultConfig()
	cfg.Render.GridWarnSize = 300
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Render.GridWarnSize != 300 {
		t.Errorf("expected 300, got %d", loaded.Render.GridWarnSize)
	}
}
