package export

import (
	"context"

	"github.com/stretchr/testify/mock"

	slackclient "slackvault/clients/slack"
)

// MockConversationSource is a mock implementation of ConversationSource
type MockConversationSource struct {
	mock.Mock
}

func (m *MockConversationSource) ListUsers(ctx context.Context) ([]slackclient.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slackclient.Member), args.Error(1)
}

func (m *MockConversationSource) ListConversations(ctx context.Context) ([]slackclient.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slackclient.Conversation), args.Error(1)
}

func (m *MockConversationSource) ConversationHistory(
	ctx context.Context,
	channelID string,
	opts slackclient.HistoryOptions,
) ([]slackclient.HistoryMessage, error) {
	args := m.Called(ctx, channelID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slackclient.HistoryMessage), args.Error(1)
}
