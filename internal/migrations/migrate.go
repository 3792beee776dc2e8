package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// goose has no dedicated dialect name for modernc's driver; the sqlite3
// dialect generates compatible SQL.
const dialect = "sqlite3"

// Up applies all pending SQL migrations from migrationsDir to db.
func Up(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("apply goose migrations: %w", err)
	}

	return nil
}
