package models

const (
	// InfoMessageSentinel replaces an absent client message ID. System
	// messages (joins, topic changes) carry no client_msg_id.
	InfoMessageSentinel = "INFO"

	// UnknownAuthorSentinel replaces an absent author user ID.
	UnknownAuthorSentinel = "UNKNOWN"
)

// Message is identified by the composite (ChannelID, TS). Slack timestamps
// are opaque lexically-sortable strings unique within a channel, which makes
// the pair a natural primary key. Rows are immutable once written.
type Message struct {
	ExternalID   string `db:"external_id"    json:"external_id"`
	Type         string `db:"type"           json:"type"`
	Text         string `db:"text"           json:"text"`
	TS           string `db:"ts"             json:"ts"`
	AuthorUserID string `db:"author_user_id" json:"author_user_id"`
	ChannelID    string `db:"channel_id"     json:"channel_id"`
}

// MessageRow is the joined read-model returned by message queries: the
// message text together with the resolved author and channel names.
type MessageRow struct {
	Text        string `db:"text"         json:"message"`
	AuthorName  string `db:"author_name"  json:"user"`
	ChannelName string `db:"channel_name" json:"channel"`
	TS          string `db:"ts"           json:"ts"`
}
