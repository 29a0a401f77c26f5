package slack

// Member is one entry of the users.list members array, reduced to the fields
// the exporter persists.
type Member struct {
	ID      string        `json:"id"`
	TeamID  string        `json:"team_id"`
	Name    string        `json:"name"`
	Profile MemberProfile `json:"profile"`
}

type MemberProfile struct {
	RealName string `json:"real_name"`
}

// Conversation is one entry of the conversations.list channels array. Name
// is empty for direct messages; User is the counterpart user for direct
// messages and empty for multi-party conversations.
type Conversation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	User   string `json:"user"`
	IsIM   bool   `json:"is_im"`
	IsMpIM bool   `json:"is_mpim"`
}

// HistoryMessage is one entry of the conversations.history messages array.
// ClientMsgID is absent on system messages, User on messages without an
// author (e.g. some bot events).
type HistoryMessage struct {
	ClientMsgID string `json:"client_msg_id"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	TS          string `json:"ts"`
	User        string `json:"user"`
}
