package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanbaker/visionsync/internal/api"
	"github.com/ethanbaker/visionsync/internal/config"
	"github.com/ethanbaker/visionsync/pkg/utils"
)

// Start the API and asset server
func main() {
	// Find env file
	envFile := utils.GetEnvWithDefault("ENV_FILE", ".env")

	// Load global config
	cfg, err := config.Load(utils.NewConfigFromEnv(envFile))
	if err != nil {
		log.Fatal("[API-MAIN]: Invalid configuration: ", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start
	if err := api.Start(ctx, cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
