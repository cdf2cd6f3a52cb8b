package main

import (
	"flag"
	"os"

	"github.com/moncayo/libchain/api"
	"github.com/moncayo/libchain/node"
	"github.com/moncayo/libchain/observability"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	port := flag.String("port", "", "HTTP port to listen on (overrides config)")
	flag.Parse()

	logger := observability.InitLogger("libchaind")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration")
	}
	if *port != "" {
		cfg.HTTPPort = *port
	}

	svc, err := node.NewService(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("node startup")
	}

	address, _, err := svc.IdentityAddress()
	if err != nil {
		logger.Fatal().Err(err).Msg("identity")
	}
	logger.Info().Str("address", address).Str("port", cfg.HTTPPort).Msg("node ready")

	server := api.NewServer(svc, cfg.HTTPPort, logger)
	if err := server.Start(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
