package detectors

import (
	"fmt"
	"strings"
	"time"

	"go-defender/internal/config"
	"go-defender/internal/decision"
	"go-defender/internal/models"
	"go-defender/internal/state"
)

// maxLogLines caps the message log attached to a raider expulsion notice.
const maxLogLines = 40

// RaiderDetector watches per-user message rates. The caller must have
// recorded the triggering message into the window already.
type RaiderDetector struct {
	messages  *state.MessageWindow
	debouncer *decision.AlertDebouncer
	executor  *decision.Executor
	notifier  Notifier
}

func NewRaiderDetector(messages *state.MessageWindow, debouncer *decision.AlertDebouncer, executor *decision.Executor, notifier Notifier) *RaiderDetector {
	return &RaiderDetector{
		messages:  messages,
		debouncer: debouncer,
		executor:  executor,
		notifier:  notifier,
	}
}

// Check counts the author's recent messages and responds once the
// configured threshold is hit. Reports whether the author was expelled;
// the error return is reserved for an invalid configured action.
func (d *RaiderDetector) Check(msg *models.Message, settings config.GuildSettings) (bool, error) {
	minutes := settings.RaiderDetectionMinutes
	cutoff := msg.CreatedAt.Add(-time.Duration(minutes) * time.Minute)
	recent := d.messages.CountSince(msg.GuildID, msg.AuthorID, cutoff)

	// Fire on exact equality, not >=, so one incident triggers exactly one
	// response: once the raider is stopped at the cap, no further message
	// arrives, and if the action failed, repeating it a few milliseconds
	// later on the next message is harmless.
	if recent != settings.RaiderDetectionMessages {
		return false, nil
	}

	action := settings.RaiderDetectionAction
	switch action {
	case models.ActionBan, models.ActionKick, models.ActionSoftban:
		req := decision.ActionRequest{
			Action:  action,
			GuildID: msg.GuildID,
			UserID:  msg.AuthorID,
			Reason:  "Message spammer",
		}
		if action == models.ActionBan {
			req.WipeDays = settings.RaiderDetectionWipe
		}

		outcome, err := d.executor.Apply(req)
		if err != nil {
			return false, err
		}
		if !outcome.Applied() {
			return false, nil
		}

		lines := d.messages.Log(msg.GuildID, msg.AuthorID, maxLogLines)
		_ = d.notifier.Notify(msg.GuildID,
			fmt.Sprintf("I have expelled user %s (%d) for posting %d messages in %d minutes. "+
				"Attached their last stored messages.", msg.AuthorName, msg.AuthorID, recent, minutes),
			NotifyOptions{
				Attachment: &Attachment{
					Name:    fmt.Sprintf("%d-log.txt", msg.AuthorID),
					Content: []byte(strings.Join(lines, "\n")),
				},
			})
		return true, nil

	case models.ActionNoAction:
		if d.debouncer.ShouldAlert(msg.GuildID, msg.CreatedAt, decision.RaidAlertCoolDown) {
			_ = d.notifier.Notify(msg.GuildID,
				fmt.Sprintf("User %s (%d) is spamming messages (%d messages in %d minutes).",
					msg.AuthorName, msg.AuthorID, recent, minutes),
				NotifyOptions{
					Ping:            true,
					LinkToChannelID: msg.ChannelID,
					LinkToMessageID: msg.MessageID,
				})
		}
		return false, nil

	default:
		return false, fmt.Errorf("invalid action %s for raider detection", action)
	}
}
