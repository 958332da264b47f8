// Command tasktrack serves the read-only admin browsing surface over the
// task execution table.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tasktrack/tasktrack/internal/bootstrap"
	"github.com/tasktrack/tasktrack/internal/data"
	httpx "github.com/tasktrack/tasktrack/internal/http"
	"github.com/tasktrack/tasktrack/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting tasktrack admin server",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"addr", cfg.HTTP.Addr,
		"dev", cfg.IsDev,
	)

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	repo := data.NewExecutionRepo(db)
	tracker := service.NewTracker(service.TrackerOptions{
		Repo:   repo,
		Tx:     data.NewSQLTxRunner(db),
		Logger: logger,
	})

	handler := httpx.NewRouter(httpx.RouterServices{
		Tracker:    tracker,
		Executions: repo,
		Logger:     logger,
		IsDev:      cfg.IsDev,
	})

	return bootstrap.RunServer(ctx, bootstrap.ServerConfig{
		HTTP:    cfg.HTTP,
		Handler: handler,
		Logger:  logger,
	})
}
