// Package server wires configuration, storage, services and the HTTP API
// into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bridgehq/bridge/internal/logging"
	"github.com/bridgehq/bridge/internal/server/config"
	"github.com/bridgehq/bridge/internal/server/httpapi"
	"github.com/bridgehq/bridge/internal/server/repositories/repomanager"
	"github.com/bridgehq/bridge/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp opens the database, runs migrations and assembles the services.
// The pgx driver is registered by the repository manager package.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, m, cfg)
	ms := services.NewMatchService(db, m)
	gs := services.NewGroupService(db, m)

	srv := httpapi.NewServer(cfg, logger, us, ms, gs)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// Run serves the API until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	app.logger.Info(ctx, "starting server")
	return app.server.Run(ctx)
}
