// Package testutils provides shared helpers for tests that need a real
// store: a throwaway SQLite database with the full schema applied.
package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"slackvault/db"
)

// NewTestDB opens a fresh SQLite database under t.TempDir with the schema
// applied. The connection is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.NewConnection("sqlite", filepath.Join(t.TempDir(), "slackvault_test.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.EnsureSchema(context.Background(), conn), "failed to create schema")
	return conn
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()

	var count int
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM "+table))
	return count
}
