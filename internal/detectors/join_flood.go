package detectors

import (
	"fmt"
	"time"

	"go-defender/internal/config"
	"go-defender/internal/decision"
	"go-defender/internal/models"
	"go-defender/internal/state"
)

// JoinFloodDetector watches per-guild join rates. It is alert-only: it
// never expels anyone, and repeated triggers are gated only by the
// debouncer.
type JoinFloodDetector struct {
	joins     *state.JoinWindow
	debouncer *decision.AlertDebouncer
	notifier  Notifier
}

func NewJoinFloodDetector(joins *state.JoinWindow, debouncer *decision.AlertDebouncer, notifier Notifier) *JoinFloodDetector {
	return &JoinFloodDetector{
		joins:     joins,
		debouncer: debouncer,
		notifier:  notifier,
	}
}

// Check records the join and alerts when the recent join count reaches the
// configured threshold. Unlike the raider detector this fires on >=, on
// every qualifying join. Reports whether an alert was emitted.
func (d *JoinFloodDetector) Check(member models.Member, settings config.GuildSettings) bool {
	d.joins.Record(member)

	minutes := settings.JoinMonitorMinutes
	cutoff := member.JoinedAt.Add(-time.Duration(minutes) * time.Minute)
	recent := d.joins.CountSince(member.GuildID, cutoff)

	if recent < settings.JoinMonitorUsers {
		return false
	}

	if !d.debouncer.ShouldAlert(member.GuildID, member.JoinedAt, decision.RaidAlertCoolDown) {
		return false
	}

	_ = d.notifier.Notify(member.GuildID,
		fmt.Sprintf("Abnormal influx of new users (%d in the past %d minutes). "+
			"Possible raid ongoing or about to start.", recent, minutes),
		NotifyOptions{Ping: true})
	return true
}
