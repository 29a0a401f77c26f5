package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	dbtx "slackvault/db/tx"
	"slackvault/models"
)

// stateRowID pins export_state to a single row.
const stateRowID = 1

type ExportStateRepository struct {
	db *sqlx.DB
}

func NewExportStateRepository(db *sqlx.DB) *ExportStateRepository {
	return &ExportStateRepository{db: db}
}

// EnsureState returns the singleton progress row, creating it on first run
// with the given run ID.
func (r *ExportStateRepository) EnsureState(ctx context.Context, runID string) (*models.ExportState, error) {
	e := dbtx.GetTransactional(ctx, r.db)

	state := &models.ExportState{}
	query := e.Rebind(`
		SELECT id, run_id, init_completed, last_loaded_channel
		FROM export_state WHERE id = ?`)
	err := sqlx.GetContext(ctx, e, state, query, stateRowID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read export state: %w", err)
	}

	insert := e.Rebind(`
		INSERT INTO export_state (id, run_id, init_completed, last_loaded_channel)
		VALUES (?, ?, FALSE, 0)`)
	if _, err := e.ExecContext(ctx, insert, stateRowID, runID); err != nil {
		return nil, fmt.Errorf("failed to create export state: %w", err)
	}
	return &models.ExportState{ID: stateRowID, RunID: runID}, nil
}

// RecordProgress stores the count of fully processed channels in listing
// order. Purely informational: resume decisions use per-channel flags.
func (r *ExportStateRepository) RecordProgress(ctx context.Context, lastLoadedChannel int) error {
	e := dbtx.GetTransactional(ctx, r.db)

	query := e.Rebind(`UPDATE export_state SET last_loaded_channel = ? WHERE id = ?`)
	if _, err := e.ExecContext(ctx, query, lastLoadedChannel, stateRowID); err != nil {
		return fmt.Errorf("failed to record export progress: %w", err)
	}
	return nil
}

// MarkCompleted records that the whole export finished.
func (r *ExportStateRepository) MarkCompleted(ctx context.Context) error {
	e := dbtx.GetTransactional(ctx, r.db)

	query := e.Rebind(`UPDATE export_state SET init_completed = TRUE WHERE id = ?`)
	if _, err := e.ExecContext(ctx, query, stateRowID); err != nil {
		return fmt.Errorf("failed to mark export completed: %w", err)
	}
	return nil
}
