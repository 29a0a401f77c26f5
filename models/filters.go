package models

import (
	"time"

	"github.com/samber/mo"
)

// UserFilter narrows user listings. Zero value matches everything.
type UserFilter struct {
	RealName mo.Option[string]
}

// ChannelFilter narrows channel listings. Zero value matches everything.
type ChannelFilter struct {
	Name mo.Option[string]
}

// MessageFilter narrows message listings. Each field is optional and
// independently settable; all are combined with AND. These are the only
// supported filter dimensions — queries are always built with bound
// parameters from this struct.
type MessageFilter struct {
	ChannelName mo.Option[string]
	From        mo.Option[time.Time]
	To          mo.Option[time.Time]
	Search      mo.Option[string]
}
