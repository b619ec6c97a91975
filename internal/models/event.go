package models

import "time"

// Message is a guild message as seen by the dispatcher. Immutable once built.
type Message struct {
	GuildID    uint64
	ChannelID  uint64
	MessageID  uint64
	AuthorID   uint64
	AuthorName string
	AuthorBot  bool
	Content    string
	CreatedAt  time.Time
}

// HasGuild reports whether the message carries guild context. DMs don't.
func (m *Message) HasGuild() bool {
	return m.GuildID != 0
}

// Member is a guild member at the time of an event. CreatedAt is the
// account creation time, JoinedAt the time the member entered the guild.
type Member struct {
	GuildID   uint64
	UserID    uint64
	Username  string
	Bot       bool
	JoinedAt  time.Time
	CreatedAt time.Time
}
