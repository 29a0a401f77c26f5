package export

import (
	"context"

	slackclient "slackvault/clients/slack"
)

// ConversationSource is the remote side of the export: the three listing
// operations the orchestrator drives. Satisfied by *slackclient.Client.
type ConversationSource interface {
	ListUsers(ctx context.Context) ([]slackclient.Member, error)
	ListConversations(ctx context.Context) ([]slackclient.Conversation, error)
	ConversationHistory(
		ctx context.Context,
		channelID string,
		opts slackclient.HistoryOptions,
	) ([]slackclient.HistoryMessage, error)
}
