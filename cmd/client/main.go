package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bridgehq/bridge/internal/client/cli"
	"github.com/bridgehq/bridge/internal/client/config"
	"github.com/bridgehq/bridge/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewJSON(os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("error: %v", err)
	}
}
