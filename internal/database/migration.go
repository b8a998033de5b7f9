package database

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"lost-found/internal/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type MigrationConfig struct {
	// Version pins the schema to a specific migration; zero means latest.
	Version uint
	// Force marks the schema clean at this version before migrating.
	Force int
}

type Migrator struct {
	db     *sqlx.DB
	config MigrationConfig
	log    *logger.Logger
}

func NewMigrator(db *sqlx.DB, config MigrationConfig, log *logger.Logger) *Migrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{db: db, config: config, log: log}
}

func (m *Migrator) Migrate() error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(m.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	mig.Log = m.log

	return m.run(mig)
}

func (m *Migrator) run(mig *migrate.Migrate) error {
	if m.config.Force != 0 {
		if err := mig.Force(m.config.Force); err != nil {
			return fmt.Errorf("force version %d: %w", m.config.Force, err)
		}
	}

	started := time.Now()

	var err error
	if m.config.Version != 0 {
		err = mig.Migrate(m.config.Version)
	} else {
		err = mig.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info("No new migrations to apply")
		return nil
	}
	if err != nil {
		version, dirty, _ := mig.Version()
		m.log.Error("Failed to apply migrations", "version", version, "dirty", dirty, "error", err)
		return err
	}

	version, _, _ := mig.Version()
	m.log.Info("Database migrations applied", "version", version, "elapsed", time.Since(started))
	return nil
}
