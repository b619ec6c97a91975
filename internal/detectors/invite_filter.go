package detectors

import (
	"fmt"
	"regexp"

	"go-defender/internal/config"
	"go-defender/internal/decision"
	"go-defender/internal/models"
)

var inviteURLRe = regexp.MustCompile(
	`(?i)(?:https?://)?(?:discord\.gg|discord\.io|discord\.me|discord\.li|discord(?:app)?\.com/invite)/\S+`)

// InviteFilter deletes messages containing invite links and optionally
// expels the author. The delete is unconditional; only the follow-up action
// is configurable.
type InviteFilter struct {
	executor *decision.Executor
	notifier Notifier
}

func NewInviteFilter(executor *decision.Executor, notifier Notifier) *InviteFilter {
	return &InviteFilter{
		executor: executor,
		notifier: notifier,
	}
}

// Check scans msg for an invite link. It reports whether the author was
// expelled; an error is returned only for an invalid configured action.
func (f *InviteFilter) Check(msg *models.Message, settings config.GuildSettings) (bool, error) {
	if !inviteURLRe.MatchString(msg.Content) {
		return false, nil
	}

	content := box(msg.Content)
	f.executor.DeleteMessage(msg.GuildID, msg.ChannelID, msg.MessageID)

	action := settings.InviteFilterAction
	switch action {
	case models.ActionNoAction:
		_ = f.notifier.Notify(msg.GuildID,
			fmt.Sprintf("I have deleted a message from %s (%d) with this content:\n%s",
				msg.AuthorName, msg.AuthorID, content),
			NotifyOptions{})
		return false, nil

	case models.ActionBan, models.ActionKick, models.ActionSoftban:
		outcome, err := f.executor.Apply(decision.ActionRequest{
			Action:  action,
			GuildID: msg.GuildID,
			UserID:  msg.AuthorID,
			Reason:  "Posting an invite link",
		})
		if err != nil {
			return false, err
		}
		if !outcome.Applied() {
			return false, nil
		}

		_ = f.notifier.Notify(msg.GuildID,
			fmt.Sprintf("I have expelled user %s (%d) for posting this message:\n%s",
				msg.AuthorName, msg.AuthorID, content),
			NotifyOptions{})
		return true, nil

	default:
		return false, fmt.Errorf("invalid action %s for invite filter", action)
	}
}

// box wraps text in a code fence the way notifications quote offending
// content.
func box(text string) string {
	return "```\n" + text + "\n```"
}
