package main

import (
	"flag"

	"github.com/Premkumar5225/global-invest-simulator/api"
	"github.com/Premkumar5225/global-invest-simulator/internal/config"
	"github.com/Premkumar5225/global-invest-simulator/internal/logger"
)

func main() {
	log := logger.New()
	defer log.Sync()

	configPath := flag.String("config", "config.yml", "path to the server config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	handler := api.ApiHandler{
		Logger:         log,
		AllowedOrigins: cfg.Cors.AllowedOrigins,
	}

	log.Infow("starting api", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
	if err := handler.StartApi(cfg.Server.Port); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
