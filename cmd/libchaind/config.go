package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/moncayo/libchain/node"
)

// libchaind config.toml key mapping to node runtime settings.
type fileConfig struct {
	Port      string   `toml:"port"`
	NodeID    string   `toml:"node_id"`
	SeedPeers []string `toml:"seed_peers"`
}

func defaultConfig() node.Config {
	return node.Config{
		HTTPPort: "5000",
	}
}

// loadConfig overlays a TOML file onto the defaults. A missing path just
// returns the defaults so the daemon can run with flags alone.
func loadConfig(path string) (node.Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return node.Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("port") {
		cfg.HTTPPort = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("node_id") {
		cfg.NodeID = strings.TrimSpace(raw.NodeID)
	}
	if meta.IsDefined("seed_peers") {
		cfg.SeedPeers = raw.SeedPeers
	}

	if cfg.HTTPPort == "" {
		return node.Config{}, fmt.Errorf("load config: port must not be empty")
	}

	return cfg, nil
}
