package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the store's tables. Creation is idempotent and the
// DDL is restricted to the dialect both drivers share.
//
// owner_user_id and author_user_id deliberately carry no foreign key: both
// hold sentinel values ("IS GROUP", "UNKNOWN") when the source record has no
// such reference, and bot authors may never appear in users.list at all.
// Referential integrity for real IDs is a write-path concern.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        TEXT PRIMARY KEY,
		team_id   TEXT,
		name      TEXT,
		real_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		id            TEXT PRIMARY KEY,
		name          TEXT,
		owner_user_id TEXT,
		loaded        BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		external_id    TEXT,
		type           TEXT,
		text           TEXT,
		ts             TEXT,
		author_user_id TEXT,
		channel_id     TEXT,
		PRIMARY KEY (channel_id, ts),
		FOREIGN KEY (channel_id) REFERENCES channels (id)
	)`,
	`CREATE TABLE IF NOT EXISTS export_state (
		id                  INTEGER PRIMARY KEY,
		run_id              TEXT,
		init_completed      BOOLEAN NOT NULL DEFAULT FALSE,
		last_loaded_channel INTEGER NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates all tables when missing. Safe to repeat.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
