package database

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFs embed.FS

// Migrate applies the embedded schema migrations. Already-applied
// migrations are not an error.
func Migrate(connStr string) error {
	src, err := iofs.New(migrationsFs, "migrations")
	if err != nil {
		log.Error("Failed to read migrations: ", err)
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, connStr)
	if err != nil {
		log.Error("Failed to init migrations: ", err)
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("Failed to apply migrations: ", err)
		return err
	}

	return nil
}
