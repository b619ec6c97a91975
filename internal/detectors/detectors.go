// Package detectors implements the automod detection chain: invite link
// filtering, message raider detection, join flood detection and new account
// suspicion. Detectors share the rolling windows, the alert debouncer and
// the action executor; the dispatcher sequences them per event.
package detectors

import "go-defender/internal/models"

// Attachment is a textual file sent alongside a notification.
type Attachment struct {
	Name    string
	Content []byte
}

// NotifyOptions controls how a guild notification is delivered.
type NotifyOptions struct {
	// Ping makes the delivery loud (staff ping) instead of informational.
	Ping bool
	// Identity renders an identity summary card for the given member.
	Identity *models.Member
	// Attachment is an optional file.
	Attachment *Attachment
	// LinkToChannelID/LinkToMessageID reference the triggering message.
	LinkToChannelID uint64
	LinkToMessageID uint64
}

// Notifier delivers user-facing notifications. Guild notifications go to
// the configured notification channel; member notifications are direct
// messages and may fail if the recipient closed their DMs.
type Notifier interface {
	Notify(guildID uint64, text string, opts NotifyOptions) error
	NotifyMember(guildID, userID uint64, text string, identity *models.Member) error
}
