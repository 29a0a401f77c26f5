// Package export drives the full workspace export: users, then channels,
// then per-channel message history, with durable per-channel resume state.
package export

import (
	"context"

	"github.com/jmoiron/sqlx"

	"slackvault/clients/notify"
	slackclient "slackvault/clients/slack"
	"slackvault/core"
	"slackvault/core/log"
	"slackvault/db"
	"slackvault/models"
	"slackvault/services/txmanager"
)

type Orchestrator struct {
	conn      *sqlx.DB
	source    ConversationSource
	users     *db.UsersRepository
	channels  *db.ChannelsRepository
	messages  *db.MessagesRepository
	state     *db.ExportStateRepository
	txManager *txmanager.TransactionManager
	notifier  notify.Notifier
}

func NewOrchestrator(
	conn *sqlx.DB,
	source ConversationSource,
	usersRepo *db.UsersRepository,
	channelsRepo *db.ChannelsRepository,
	messagesRepo *db.MessagesRepository,
	stateRepo *db.ExportStateRepository,
	txManager *txmanager.TransactionManager,
	notifier notify.Notifier,
) *Orchestrator {
	return &Orchestrator{
		conn:      conn,
		source:    source,
		users:     usersRepo,
		channels:  channelsRepo,
		messages:  messagesRepo,
		state:     stateRepo,
		txManager: txManager,
		notifier:  notifier,
	}
}

// Run executes the export pipeline: ensure schema, load users, load
// channels, then load history channel by channel, skipping channels whose
// loaded flag is already set. Interrupting a run loses nothing: every
// channel's history is committed together with its loaded flag before the
// next channel starts, so the next Run resumes where this one stopped.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := db.EnsureSchema(ctx, o.conn); err != nil {
		return err
	}

	state, err := o.state.EnsureState(ctx, core.NewID("run"))
	if err != nil {
		return err
	}
	if state.InitCompleted {
		o.notifier.Say("The export is already complete. Delete the database to start over.")
		return nil
	}

	members, err := o.loadUsers(ctx)
	if err != nil {
		return err
	}

	conversations, err := o.loadChannels(ctx, members)
	if err != nil {
		return err
	}

	if err := o.loadHistories(ctx, conversations); err != nil {
		return err
	}

	if err := o.state.MarkCompleted(ctx); err != nil {
		return err
	}
	o.notifier.Say("✅ Workspace export completed")
	return nil
}

func (o *Orchestrator) loadUsers(ctx context.Context) ([]slackclient.Member, error) {
	log.Info("📋 Loading workspace users...")
	members, err := o.source.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(members))
	for i, member := range members {
		users[i] = models.User{
			ID:       member.ID,
			TeamID:   member.TeamID,
			Name:     member.Name,
			RealName: member.Profile.RealName,
		}
	}

	if err := o.users.CreateUsers(ctx, users); err != nil {
		if !core.IsUniqueViolation(err) {
			return nil, err
		}
		log.Info("📋 Users already persisted from a previous run, continuing")
	}
	log.Info("✅ Loaded %d users", len(users))
	return members, nil
}

func (o *Orchestrator) loadChannels(ctx context.Context, members []slackclient.Member) ([]slackclient.Conversation, error) {
	log.Info("📋 Loading workspace channels...")
	conversations, err := o.source.ListConversations(ctx)
	if err != nil {
		return nil, err
	}

	realNames := make(map[string]string, len(members))
	for _, member := range members {
		realNames[member.ID] = member.Profile.RealName
	}

	channels := make([]models.Channel, len(conversations))
	for i, conv := range conversations {
		channels[i] = models.Channel{
			ID:          conv.ID,
			Name:        resolveChannelName(conv, realNames),
			OwnerUserID: resolveChannelOwner(conv),
		}
	}

	if err := o.channels.CreateChannels(ctx, channels); err != nil {
		if !core.IsUniqueViolation(err) {
			return nil, err
		}
		log.Info("📋 Channels already persisted from a previous run, continuing")
	}
	log.Info("✅ Loaded %d channels", len(channels))
	return conversations, nil
}

func (o *Orchestrator) loadHistories(ctx context.Context, conversations []slackclient.Conversation) error {
	o.notifier.Say("Loading channel message history, this may take a while...")

	loadedCount := 0
	for i, conv := range conversations {
		loaded, err := o.channels.IsLoaded(ctx, conv.ID)
		if err != nil {
			return err
		}
		if loaded {
			loadedCount++
			log.Info("⏭️ Channel %s already loaded (%d/%d)", conv.ID, i+1, len(conversations))
			continue
		}

		history, err := o.source.ConversationHistory(ctx, conv.ID, slackclient.HistoryOptions{})
		if err != nil {
			return err
		}

		messages := make([]models.Message, len(history))
		for j, msg := range history {
			messages[j] = historyToMessage(conv.ID, msg)
		}

		if err := o.messages.CreateMessages(ctx, conv.ID, messages); err != nil {
			if !core.IsUniqueViolation(err) {
				return err
			}
			// A previous run wrote this history but crashed before marking
			// the channel loaded. The rows are there; just finish the job.
			log.Info("📋 History for channel %s already persisted, continuing", conv.ID)
		}

		loadedCount++
		count := loadedCount
		err = o.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := o.channels.MarkLoaded(txCtx, conv.ID); err != nil {
				return err
			}
			return o.state.RecordProgress(txCtx, count)
		})
		if err != nil {
			return err
		}
		log.Info("💾 Loaded %d messages from channel %s (%d/%d)", len(messages), conv.ID, i+1, len(conversations))
	}
	return nil
}

// resolveChannelName falls back to the counterpart user's real name for
// direct messages (which carry no name), and to the group sentinel when no
// counterpart exists either.
func resolveChannelName(conv slackclient.Conversation, realNames map[string]string) string {
	if conv.Name != "" {
		return conv.Name
	}
	if conv.User != "" {
		if realName, ok := realNames[conv.User]; ok && realName != "" {
			return realName
		}
		return conv.User
	}
	return models.GroupOwnerSentinel
}

func resolveChannelOwner(conv slackclient.Conversation) string {
	if conv.User != "" {
		return conv.User
	}
	return models.GroupOwnerSentinel
}

func historyToMessage(channelID string, msg slackclient.HistoryMessage) models.Message {
	externalID := msg.ClientMsgID
	if externalID == "" {
		externalID = models.InfoMessageSentinel
	}
	authorID := msg.User
	if authorID == "" {
		authorID = models.UnknownAuthorSentinel
	}
	return models.Message{
		ExternalID:   externalID,
		Type:         msg.Type,
		Text:         msg.Text,
		TS:           msg.TS,
		AuthorUserID: authorID,
		ChannelID:    channelID,
	}
}
