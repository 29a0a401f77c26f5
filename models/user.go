package models

// User is a workspace member as persisted in the users table. Rows are
// created once per distinct Slack user ID and never mutated or deleted by
// the exporter.
type User struct {
	ID       string `db:"id"        json:"id"`
	TeamID   string `db:"team_id"   json:"team_id"`
	Name     string `db:"name"      json:"name"`
	RealName string `db:"real_name" json:"real_name"`
}
