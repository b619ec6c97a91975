package detectors

import (
	"fmt"
	"time"

	"go-defender/internal/config"
	"go-defender/internal/models"
)

// JoinSuspicionDetector flags freshly created accounts at join time. Both
// checks are optional: a guild-wide minimum account age, and per-member
// subscriptions with individual thresholds. It never expels.
type JoinSuspicionDetector struct {
	members  *config.MemberStore
	notifier Notifier
}

func NewJoinSuspicionDetector(members *config.MemberStore, notifier Notifier) *JoinSuspicionDetector {
	return &JoinSuspicionDetector{
		members:  members,
		notifier: notifier,
	}
}

func (d *JoinSuspicionDetector) Check(member models.Member, settings config.GuildSettings) {
	if hours := settings.JoinMonitorSuspHours; hours > 0 && youngerThan(member, hours) {
		_ = d.notifier.Notify(member.GuildID,
			fmt.Sprintf("A user younger than %d hours just joined.", hours),
			NotifyOptions{Identity: &member})
	}

	for _, subID := range d.members.Subscribers(member.GuildID) {
		hours := d.members.Member(member.GuildID, subID).SuspicionHours
		if hours == 0 || !youngerThan(member, hours) {
			continue
		}

		// Best-effort: the subscriber may have closed their DMs
		_ = d.notifier.NotifyMember(member.GuildID, subID,
			fmt.Sprintf("A user younger than %d hours just joined.", hours),
			&member)
	}
}

func youngerThan(member models.Member, hours int) bool {
	return member.CreatedAt.After(member.JoinedAt.Add(-time.Duration(hours) * time.Hour))
}
