// Package migration creates the batch tracking schema on startup so a fresh
// database is usable without manual setup. Postgres gets versioned SQL
// migrations; sqlite and mysql fall back to gorm AutoMigrate.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	feeddomain "github.com/poultrylabs/brooder/internal/feed/domain"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	medicinedomain "github.com/poultrylabs/brooder/internal/medicine/domain"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	saledomain "github.com/poultrylabs/brooder/internal/sale/domain"
	"gorm.io/gorm"
)

//go:embed sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate covers the dialects golang-migrate is not wired for here.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&flockdomain.Flock{},
		&feeddomain.FeedTransaction{},
		&monitoringdomain.DailyMonitoringRecord{},
		&saledomain.SaleRecord{},
		&medicinedomain.MedicineEntry{},
	)
}
