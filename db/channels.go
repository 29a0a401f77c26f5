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

type ChannelsRepository struct {
	db *sqlx.DB
}

func NewChannelsRepository(db *sqlx.DB) *ChannelsRepository {
	return &ChannelsRepository{db: db}
}

// CreateChannels inserts the full channel list as a single bulk insert, all
// rows with loaded = false.
func (r *ChannelsRepository) CreateChannels(ctx context.Context, channels []models.Channel) error {
	if len(channels) == 0 {
		return nil
	}
	e := dbtx.GetTransactional(ctx, r.db)

	query := `
		INSERT INTO channels (id, name, owner_user_id, loaded)
		VALUES (:id, :name, :owner_user_id, :loaded)`

	if _, err := sqlx.NamedExecContext(ctx, e, query, channels); err != nil {
		return fmt.Errorf("failed to insert channels: %w", err)
	}
	return nil
}

// MarkLoaded flips a channel's loaded flag to true. Idempotent: marking an
// already-loaded channel is a no-op.
func (r *ChannelsRepository) MarkLoaded(ctx context.Context, channelID string) error {
	e := dbtx.GetTransactional(ctx, r.db)

	query := e.Rebind(`UPDATE channels SET loaded = TRUE WHERE id = ?`)
	if _, err := e.ExecContext(ctx, query, channelID); err != nil {
		return fmt.Errorf("failed to mark channel %s loaded: %w", channelID, err)
	}
	return nil
}

// IsLoaded reports whether a channel's full history has been durably written.
// An unknown channel is simply not loaded.
func (r *ChannelsRepository) IsLoaded(ctx context.Context, channelID string) (bool, error) {
	e := dbtx.GetTransactional(ctx, r.db)

	var loaded bool
	query := e.Rebind(`SELECT loaded FROM channels WHERE id = ?`)
	err := sqlx.GetContext(ctx, e, &loaded, query, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check loaded flag for channel %s: %w", channelID, err)
	}
	return loaded, nil
}

// ListChannels returns channels matching the filter, ordered by name.
func (r *ChannelsRepository) ListChannels(ctx context.Context, filter models.ChannelFilter) ([]models.Channel, error) {
	e := dbtx.GetTransactional(ctx, r.db)

	query := `SELECT id, name, owner_user_id, loaded FROM channels`
	var args []any
	if name, ok := filter.Name.Get(); ok {
		query += ` WHERE name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY name ASC`

	channels := []models.Channel{}
	if err := sqlx.SelectContext(ctx, e, &channels, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}
