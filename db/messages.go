package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	dbtx "slackvault/db/tx"
	"slackvault/models"
)

type MessagesRepository struct {
	db *sqlx.DB
}

func NewMessagesRepository(db *sqlx.DB) *MessagesRepository {
	return &MessagesRepository{db: db}
}

// CreateMessages inserts one channel's history as a single bulk insert. The
// composite (channel_id, ts) primary key makes re-inserting an already
// exported history fail with a unique violation, which the orchestrator
// treats as "already persisted".
func (r *MessagesRepository) CreateMessages(ctx context.Context, channelID string, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	e := dbtx.GetTransactional(ctx, r.db)

	rows := make([]models.Message, len(messages))
	for i, msg := range messages {
		msg.ChannelID = channelID
		rows[i] = msg
	}

	query := `
		INSERT INTO messages (external_id, type, text, ts, author_user_id, channel_id)
		VALUES (:external_id, :type, :text, :ts, :author_user_id, :channel_id)`

	if _, err := sqlx.NamedExecContext(ctx, e, query, rows); err != nil {
		return fmt.Errorf("failed to insert messages for channel %s: %w", channelID, err)
	}
	return nil
}

// ListMessages returns joined message rows matching the filter, ordered by
// timestamp. Every condition binds its value as a query parameter; filter
// input never reaches the SQL text itself.
func (r *MessagesRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.MessageRow, error) {
	e := dbtx.GetTransactional(ctx, r.db)

	query := `
		SELECT m.text AS text, u.real_name AS author_name, c.name AS channel_name, m.ts AS ts
		FROM messages m
		INNER JOIN users u ON m.author_user_id = u.id
		INNER JOIN channels c ON m.channel_id = c.id`

	var conditions []string
	var args []any
	if channelName, ok := filter.ChannelName.Get(); ok {
		conditions = append(conditions, `c.name = ?`)
		args = append(args, channelName)
	}
	if from, ok := filter.From.Get(); ok {
		// Slack timestamps are strings like "1610000000.000200"; compare
		// numerically so the bound is a real time bound.
		conditions = append(conditions, `CAST(m.ts AS REAL) >= ?`)
		args = append(args, float64(from.Unix()))
	}
	if to, ok := filter.To.Get(); ok {
		conditions = append(conditions, `CAST(m.ts AS REAL) <= ?`)
		args = append(args, float64(to.Unix()))
	}
	if search, ok := filter.Search.Get(); ok {
		conditions = append(conditions, `m.text LIKE ?`)
		args = append(args, "%"+search+"%")
	}

	for i, condition := range conditions {
		if i == 0 {
			query += ` WHERE ` + condition
		} else {
			query += ` AND ` + condition
		}
	}
	query += ` ORDER BY m.ts ASC`

	rows := []models.MessageRow{}
	if err := sqlx.SelectContext(ctx, e, &rows, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return rows, nil
}
