package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bridgehq/bridge/internal/logging"
	"github.com/bridgehq/bridge/internal/server"
	"github.com/bridgehq/bridge/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewJSON(os.Stderr)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("error: %v", err)
	}
}
