package models

// GroupOwnerSentinel marks conversations without a single counterpart user
// (multi-party and group conversations) in the owner_user_id column.
const GroupOwnerSentinel = "IS GROUP"

// Channel is a conversation of any kind: public or private channel,
// multi-party conversation, or direct message. Loaded flips from false to
// true exactly once, after the channel's full history is durably written.
type Channel struct {
	ID          string `db:"id"            json:"id"`
	Name        string `db:"name"          json:"name"`
	OwnerUserID string `db:"owner_user_id" json:"owner_user_id"`
	Loaded      bool   `db:"loaded"        json:"loaded"`
}
