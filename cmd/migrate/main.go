package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/henvic/geostore"
	"github.com/henvic/geostore/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/tern/v2/migrate"
)

var (
	envFile      = flag.String("env-file", ".env", "File with environment variables to load, if it exists")
	versionTable = flag.String("version-table", "schema_version", "Table where the schema version is stored")
	target       = flag.Int("target", -1, "Migrate to this schema version (-1 for the latest)")
)

func main() {
	flag.Parse()
	p := program{
		log: slog.Default(),
	}

	if err := p.run(); err != nil {
		p.log.Error("application terminated", slog.Any("error", err))
		os.Exit(1)
	}
}

type program struct {
	log *slog.Logger
}

func (p *program) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL, err := config.LoadDatabaseURL(*envFile)
	if err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, databaseURL.Reveal())
	if err != nil {
		return fmt.Errorf("pgx connection error: %w", err)
	}
	defer conn.Close(context.Background())

	m, err := migrate.NewMigrator(ctx, conn, *versionTable)
	if err != nil {
		return fmt.Errorf("cannot create migrator: %w", err)
	}
	if err := m.LoadMigrations(geostore.Migrations()); err != nil {
		return fmt.Errorf("cannot load migrations: %w", err)
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("cannot get current schema version: %w", err)
	}
	p.log.Info("migrating database",
		slog.Int("current_version", int(current)),
		slog.Int("available", len(m.Migrations)),
	)

	if *target < 0 {
		err = m.Migrate(ctx)
	} else {
		err = m.MigrateTo(ctx, int32(*target))
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	current, err = m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("cannot get current schema version: %w", err)
	}
	p.log.Info("database migrated", slog.Int("version", int(current)))
	return nil
}
