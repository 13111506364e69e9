package db

import (
	"fmt"

	"fullstack/internal/domain/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migration applies all pending migrations from migratePath against the
// database at dbDSN. An already up-to-date schema is not an error.
func Migration(dbDSN, migratePath string) error {
	if dbDSN == "" {
		return errors.ErrDatabaseConnection
	}
	if migratePath == "" {
		return fmt.Errorf("migrate path is empty")
	}

	m, err := migrate.New("file://"+migratePath, dbDSN)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
