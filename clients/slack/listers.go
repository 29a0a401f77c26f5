package slack

import (
	"context"
	"net/url"

	"github.com/samber/mo"
)

// conversationTypes covers every conversation kind the exporter archives:
// public and private channels, multi-party conversations, direct messages.
const conversationTypes = "public_channel,private_channel,mpim,im"

// ListUsers fetches the full member list of the workspace.
func (c *Client) ListUsers(ctx context.Context) ([]Member, error) {
	params := url.Values{}
	params.Set("limit", pageLimit)
	if c.teamID != "" {
		params.Set("team_id", c.teamID)
	}
	return collect[Member](ctx, c, "users.list", params, "members")
}

// ListConversations fetches every conversation of every kind.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	params := url.Values{}
	params.Set("limit", pageLimit)
	params.Set("types", conversationTypes)
	if c.teamID != "" {
		params.Set("team_id", c.teamID)
	}
	return collect[Conversation](ctx, c, "conversations.list", params, "channels")
}

// HistoryOptions bounds a history fetch. Oldest and Latest are Slack
// timestamps and independently settable; both absent means the full history.
type HistoryOptions struct {
	Oldest mo.Option[string]
	Latest mo.Option[string]
}

// ConversationHistory fetches the message history of one conversation.
func (c *Client) ConversationHistory(ctx context.Context, channelID string, opts HistoryOptions) ([]HistoryMessage, error) {
	params := url.Values{}
	params.Set("channel", channelID)
	params.Set("limit", pageLimit)
	if oldest, ok := opts.Oldest.Get(); ok {
		params.Set("oldest", oldest)
	}
	if latest, ok := opts.Latest.Get(); ok {
		params.Set("latest", latest)
	}
	return collect[HistoryMessage](ctx, c, "conversations.history", params, "messages")
}
