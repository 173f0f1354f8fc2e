package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/neighborly/backend/internal/config"
	"github.com/neighborly/backend/internal/logging"
	"github.com/neighborly/backend/internal/migration"
	"github.com/neighborly/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations and normalize vendor categories
  down        roll back every migration
  reset       roll back every migration, then apply them all again
  version     print the current schema version`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	m, err := migration.New(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("open migrations failed", "error", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			slog.Warn("closing migrator failed", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		up(m)
		normalizeCategories(cfg)
	case "down":
		down(m)
	case "reset":
		down(m)
		up(m)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			slog.Info("no migrations applied")
			return
		}
		if err != nil {
			logging.Fatal("read version failed", "error", err)
		}
		slog.Info("schema version", "version", version, "dirty", dirty)
	default:
		usage()
	}
}

func up(m *migrate.Migrate) {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("all migrations already applied")
		return
	}
	if err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	slog.Info("migrations completed")
}

// normalizeCategories maps free-text vendor categories written before
// categories were validated onto their canonical keys.
func normalizeCategories(cfg config.Config) {
	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	n, err := repository.NewPgVendorRepository(pool).NormalizeCategories(ctx)
	if err != nil {
		logging.Fatal("normalize vendor categories failed", "error", err)
	}
	slog.Info("vendor categories normalized", "updated", n)
}

func down(m *migrate.Migrate) {
	err := m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("nothing to roll back")
		return
	}
	if err != nil {
		logging.Fatal("rollback failed", "error", err)
	}
	slog.Info("all migrations rolled back")
}
