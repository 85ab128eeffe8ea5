package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/activity"
	buildingrepo "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/building"
	officerepo "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/office"
	orgrepo "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/organization"
	"github.com/heartmarshall/orgdirectory-backend/internal/config"
	"github.com/heartmarshall/orgdirectory-backend/internal/service/directory"
	"github.com/heartmarshall/orgdirectory-backend/internal/service/registry"
)

// Services bundles the constructed application services for the hosting
// process (transport adapters are wired by the embedder, not here).
type Services struct {
	Directory *directory.Service
	Registry  *registry.Service
}

// Run is the application entry point. It loads configuration, initializes the
// logger, connects to the database, optionally applies migrations, builds the
// services, and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, cfg.Database); err != nil {
			return err
		}
		logger.Info("migrations applied", slog.String("dir", cfg.Database.MigrationsDir))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	_ = Build(logger, pool)

	logger.Info("application ready")

	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}

// Build constructs the repositories and services on top of an open pool.
// Split from Run so tests and embedders can wire against their own pool.
func Build(logger *slog.Logger, pool *pgxpool.Pool) *Services {
	buildings := buildingrepo.New(pool)
	offices := officerepo.New(pool)
	activities := activityrepo.New(pool)
	organizations := orgrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	return &Services{
		Directory: directory.NewService(logger, organizations, activities),
		Registry:  registry.NewService(logger, buildings, offices, activities, organizations, tx),
	}
}
