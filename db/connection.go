package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// wire up the postgres and sqlite drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// NewConnection opens the store. driver is "sqlite" (dbURL is a file path)
// or "postgres" (dbURL is a connection string). The handle is process-wide:
// opened once per run, closed at process exit.
func NewConnection(driver, dbURL string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sqlx.Open(driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite allows one writer at a time; the exporter is single-threaded
		// anyway, so a single connection avoids lock contention outright.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
