package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generate.MaxParts != nil || cfg.Generate.Leet != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesGenerateSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[generate]\nmax-parts = 2\nper-category = 250\nleet = false\nformat = \"markdown\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Generate
	if g.MaxParts == nil || *g.MaxParts != 2 {
		t.Fatalf("unexpected max-parts: %v", g.MaxParts)
	}
	if g.PerCategory == nil || *g.PerCategory != 250 {
		t.Fatalf("unexpected per-category: %v", g.PerCategory)
	}
	if g.Leet == nil || *g.Leet {
		t.Fatalf("unexpected leet: %v", g.Leet)
	}
	if g.Format == nil || *g.Format != "markdown" {
		t.Fatalf("unexpected format: %v", g.Format)
	}
	if g.Symbols != nil {
		t.Fatalf("expected symbols to stay unset")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[generate]\nmax-part = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "max-part") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "passcand", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "passcand", "passcand.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
