package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackvault/core"
	"slackvault/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := NewConnection("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, EnsureSchema(context.Background(), conn))
	return conn
}

func countRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM "+table))
	return count
}

func seedConversation(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, NewUsersRepository(conn).CreateUsers(ctx, []models.User{
		{ID: "U1", TeamID: "T1", Name: "ada", RealName: "Ada Lovelace"},
		{ID: "U2", TeamID: "T1", Name: "alan", RealName: "Alan Turing"},
	}))
	require.NoError(t, NewChannelsRepository(conn).CreateChannels(ctx, []models.Channel{
		{ID: "C1", Name: "general", OwnerUserID: models.GroupOwnerSentinel},
		{ID: "C2", Name: "Ada Lovelace", OwnerUserID: "U1"},
	}))
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, EnsureSchema(context.Background(), conn))
}

func TestUsersRepositoryCreateAndList(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUsersRepository(conn)
	ctx := context.Background()

	seedConversation(t, conn)

	users, err := repo.ListUsers(ctx, models.UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].Name, "ordered by name")

	filtered, err := repo.ListUsers(ctx, models.UserFilter{RealName: mo.Some("Alan Turing")})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "U2", filtered[0].ID)
}

func TestUsersRepositoryDuplicateInsertIsUniqueViolation(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUsersRepository(conn)
	ctx := context.Background()

	users := []models.User{{ID: "U1", TeamID: "T1", Name: "ada", RealName: "Ada Lovelace"}}
	require.NoError(t, repo.CreateUsers(ctx, users))

	err := repo.CreateUsers(ctx, users)
	require.Error(t, err)
	assert.True(t, core.IsUniqueViolation(err))
	assert.Equal(t, 1, countRows(t, conn, "users"))
}

func TestChannelsRepositoryLoadedFlag(t *testing.T) {
	conn := newTestDB(t)
	repo := NewChannelsRepository(conn)
	ctx := context.Background()

	seedConversation(t, conn)

	loaded, err := repo.IsLoaded(ctx, "C1")
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, repo.MarkLoaded(ctx, "C1"))
	loaded, err = repo.IsLoaded(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, loaded)

	// Marking again is a no-op.
	require.NoError(t, repo.MarkLoaded(ctx, "C1"))
	loaded, err = repo.IsLoaded(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, loaded)

	// Unknown channels are simply not loaded.
	loaded, err = repo.IsLoaded(ctx, "C404")
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestMessagesRepositoryCompositeKey(t *testing.T) {
	conn := newTestDB(t)
	repo := NewMessagesRepository(conn)
	ctx := context.Background()

	seedConversation(t, conn)

	messages := []models.Message{
		{ExternalID: "m1", Type: "message", Text: "hello", TS: "1610000000.000100", AuthorUserID: "U1"},
		{ExternalID: "m2", Type: "message", Text: "world", TS: "1610000000.000200", AuthorUserID: "U2"},
	}
	require.NoError(t, repo.CreateMessages(ctx, "C1", messages))
	assert.Equal(t, 2, countRows(t, conn, "messages"))

	// Re-inserting the same (channel_id, ts) pairs violates the primary key;
	// the caller treats that as "already persisted".
	err := repo.CreateMessages(ctx, "C1", messages)
	require.Error(t, err)
	assert.True(t, core.IsUniqueViolation(err))
	assert.Equal(t, 2, countRows(t, conn, "messages"))

	// The same timestamps in a different channel are distinct rows.
	require.NoError(t, repo.CreateMessages(ctx, "C2", messages))
	assert.Equal(t, 4, countRows(t, conn, "messages"))
}

func TestMessagesRepositoryListFilters(t *testing.T) {
	conn := newTestDB(t)
	repo := NewMessagesRepository(conn)
	ctx := context.Background()

	seedConversation(t, conn)

	require.NoError(t, repo.CreateMessages(ctx, "C1", []models.Message{
		{ExternalID: "m1", Type: "message", Text: "deploy went fine", TS: "1610000000.000100", AuthorUserID: "U1"},
		{ExternalID: "m2", Type: "message", Text: "rollback needed", TS: "1620000000.000100", AuthorUserID: "U2"},
	}))
	require.NoError(t, repo.CreateMessages(ctx, "C2", []models.Message{
		{ExternalID: "m3", Type: "message", Text: "lunch?", TS: "1615000000.000100", AuthorUserID: "U1"},
	}))

	all, err := repo.ListMessages(ctx, models.MessageFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "deploy went fine", all[0].Text, "ordered by timestamp")

	byChannel, err := repo.ListMessages(ctx, models.MessageFilter{ChannelName: mo.Some("general")})
	require.NoError(t, err)
	assert.Len(t, byChannel, 2)

	bounded, err := repo.ListMessages(ctx, models.MessageFilter{
		From: mo.Some(time.Unix(1612000000, 0)),
		To:   mo.Some(time.Unix(1618000000, 0)),
	})
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, "lunch?", bounded[0].Text)

	searched, err := repo.ListMessages(ctx, models.MessageFilter{Search: mo.Some("rollback")})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Alan Turing", searched[0].AuthorName)
	assert.Equal(t, "general", searched[0].ChannelName)

	// A search term full of SQL metacharacters is just a literal.
	hostile, err := repo.ListMessages(ctx, models.MessageFilter{Search: mo.Some("'; DROP TABLE messages; --")})
	require.NoError(t, err)
	assert.Empty(t, hostile)
	assert.Equal(t, 3, countRows(t, conn, "messages"))
}

func TestExportStateRepositorySingleton(t *testing.T) {
	conn := newTestDB(t)
	repo := NewExportStateRepository(conn)
	ctx := context.Background()

	state, err := repo.EnsureState(ctx, "run_first")
	require.NoError(t, err)
	assert.Equal(t, "run_first", state.RunID)
	assert.False(t, state.InitCompleted)
	assert.Equal(t, 0, state.LastLoadedChannel)

	// A later run finds the existing row; the original run ID sticks.
	state, err = repo.EnsureState(ctx, "run_second")
	require.NoError(t, err)
	assert.Equal(t, "run_first", state.RunID)

	require.NoError(t, repo.RecordProgress(ctx, 7))
	require.NoError(t, repo.MarkCompleted(ctx))

	state, err = repo.EnsureState(ctx, "run_third")
	require.NoError(t, err)
	assert.True(t, state.InitCompleted)
	assert.Equal(t, 7, state.LastLoadedChannel)
}
