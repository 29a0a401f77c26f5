// Package query is the read side of the store: listings over the exported
// users, channels, and messages.
package query

import (
	"context"
	"fmt"

	"slackvault/core/log"
	"slackvault/db"
	"slackvault/models"
)

type QueryService struct {
	users    *db.UsersRepository
	channels *db.ChannelsRepository
	messages *db.MessagesRepository
}

func NewQueryService(
	usersRepo *db.UsersRepository,
	channelsRepo *db.ChannelsRepository,
	messagesRepo *db.MessagesRepository,
) *QueryService {
	return &QueryService{users: usersRepo, channels: channelsRepo, messages: messagesRepo}
}

func (s *QueryService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log.Debug("📋 Listing users")
	users, err := s.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *QueryService) ListChannels(ctx context.Context, filter models.ChannelFilter) ([]models.Channel, error) {
	log.Debug("📋 Listing channels")
	channels, err := s.channels.ListChannels(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

func (s *QueryService) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.MessageRow, error) {
	log.Debug("📋 Listing messages")
	rows, err := s.messages.ListMessages(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return rows, nil
}
