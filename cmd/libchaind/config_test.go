package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "5000" {
		t.Fatalf("unexpected default port: %q", cfg.HTTPPort)
	}
	if cfg.NodeID != "" {
		t.Fatalf("expected empty node id, got %q", cfg.NodeID)
	}
	if len(cfg.SeedPeers) != 0 {
		t.Fatalf("expected no seed peers, got %v", cfg.SeedPeers)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	content := `
port = "8080"
node_id = "library.alpha"
seed_peers = ["node-a:5000", "node-b:5000"]
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.NodeID != "library.alpha" {
		t.Fatalf("unexpected node id: %q", cfg.NodeID)
	}
	if len(cfg.SeedPeers) != 2 || cfg.SeedPeers[0] != "node-a:5000" {
		t.Fatalf("unexpected seed peers: %v", cfg.SeedPeers)
	}
}

func TestLoadConfigRejectsEmptyPort(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("port = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for empty port")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
