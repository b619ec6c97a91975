// Package dispatcher is the engine's inbound surface: the host platform
// invokes one entry point per event and the dispatcher sequences rank
// resolution, warden rules and the detector chain, short-circuiting once a
// subject has been expelled.
package dispatcher

import (
	"fmt"

	"go-defender/internal/config"
	"go-defender/internal/decision"
	"go-defender/internal/detectors"
	"go-defender/internal/logging"
	"go-defender/internal/models"
	"go-defender/internal/platform"
	"go-defender/internal/ranks"
	"go-defender/internal/state"
	"go-defender/internal/warden"
)

// MessageCounter is the external per-member message tally.
type MessageCounter interface {
	Increment(guildID, userID uint64)
}

type Dispatcher struct {
	settings      *config.SettingsStore
	messages      *state.MessageWindow
	staffActivity *state.StaffActivity
	counter       MessageCounter
	staff         ranks.StaffChecker
	resolver      ranks.Resolver
	rules         *warden.Registry
	monitor       decision.Monitor
	moderator     decision.Moderator

	inviteFilter  *detectors.InviteFilter
	raider        *detectors.RaiderDetector
	joinFlood     *detectors.JoinFloodDetector
	joinSuspicion *detectors.JoinSuspicionDetector
}

type Deps struct {
	Settings      *config.SettingsStore
	Messages      *state.MessageWindow
	StaffActivity *state.StaffActivity
	Counter       MessageCounter
	Staff         ranks.StaffChecker
	Resolver      ranks.Resolver
	Rules         *warden.Registry
	Monitor       decision.Monitor
	Moderator     decision.Moderator
	InviteFilter  *detectors.InviteFilter
	Raider        *detectors.RaiderDetector
	JoinFlood     *detectors.JoinFloodDetector
	JoinSuspicion *detectors.JoinSuspicionDetector
}

func New(deps Deps) *Dispatcher {
	return &Dispatcher{
		settings:      deps.Settings,
		messages:      deps.Messages,
		staffActivity: deps.StaffActivity,
		counter:       deps.Counter,
		staff:         deps.Staff,
		resolver:      deps.Resolver,
		rules:         deps.Rules,
		monitor:       deps.Monitor,
		moderator:     deps.Moderator,
		inviteFilter:  deps.InviteFilter,
		raider:        deps.Raider,
		joinFlood:     deps.JoinFlood,
		joinSuspicion: deps.JoinSuspicion,
	}
}

// OnMessage processes one inbound guild message. The returned error is a
// configuration defect (invalid action value) and nothing else; platform
// failures are routed to the monitor internally.
func (d *Dispatcher) OnMessage(msg models.Message, author models.Member) error {
	if !msg.HasGuild() || msg.AuthorBot {
		return nil
	}

	settings := d.settings.Guild(msg.GuildID)
	if !settings.Enabled {
		return nil
	}

	if settings.CountMessages {
		d.counter.Increment(msg.GuildID, msg.AuthorID)
	}

	d.messages.Record(msg)

	rank := d.resolver.Rank(author)
	isStaff := false
	if rank == models.Rank1 && d.staff.IsStaff(msg.GuildID, msg.AuthorID) {
		isStaff = true
		d.staffActivity.Refresh(msg.GuildID)
	}

	if settings.WardenEnabled {
		ctx := &warden.Context{Rank: rank, Message: &msg}
		if d.runRules(msg.GuildID, warden.EventOnMessage, ctx) {
			return nil
		}
	}

	if settings.InviteFilterEnabled && !isStaff && rank >= settings.InviteFilterRank {
		expelled, err := d.inviteFilter.Check(&msg, settings)
		if err != nil {
			return err
		}
		if expelled {
			return nil
		}
	}

	if settings.RaiderDetectionEnabled && !isStaff && rank >= settings.RaiderDetectionRank {
		expelled, err := d.raider.Check(&msg, settings)
		if err != nil {
			return err
		}
		if expelled {
			return nil
		}
	}

	if settings.SilenceEnabled && !isStaff && settings.SilenceRank != 0 && rank >= settings.SilenceRank {
		// Best-effort removal of messages from silenced ranks
		_ = d.moderator.DeleteMessage(msg.GuildID, msg.ChannelID, msg.MessageID)
	}

	return nil
}

// OnMemberJoin processes one inbound member join. Join monitoring runs both
// detectors unconditionally, regardless of the flood detector's outcome.
func (d *Dispatcher) OnMemberJoin(member models.Member) {
	if member.Bot {
		return
	}

	settings := d.settings.Guild(member.GuildID)
	if !settings.Enabled {
		return
	}

	if settings.WardenEnabled {
		ctx := &warden.Context{Rank: d.resolver.Rank(member), Member: &member}
		d.runRules(member.GuildID, warden.EventOnUserJoin, ctx)
	}

	if settings.JoinMonitorEnabled {
		d.joinFlood.Check(member, settings)
		d.joinSuspicion.Check(member, settings)
	}
}

// OnMessageEdit exists only to refresh the staff activity timestamp.
func (d *Dispatcher) OnMessageEdit(author models.Member) {
	d.staffSighting(author)
}

// OnReaction handles both reaction add and remove; like message edits they
// only refresh staff activity.
func (d *Dispatcher) OnReaction(actor models.Member) {
	d.staffSighting(actor)
}

func (d *Dispatcher) staffSighting(member models.Member) {
	if member.GuildID == 0 || member.Bot {
		return
	}
	if d.staff.IsStaff(member.GuildID, member.UserID) {
		d.staffActivity.Refresh(member.GuildID)
	}
}

// runRules evaluates the guild's rules for event in registration order.
// Rule failures are forwarded to the monitor and never abort evaluation.
// Returns true once any rule's actions report the subject expelled.
func (d *Dispatcher) runRules(guildID uint64, event warden.Event, ctx *warden.Context) bool {
	for _, rule := range d.rules.RulesFor(guildID, event) {
		if !rule.SatisfiesConditions(ctx) {
			continue
		}

		expelled, err := rule.DoActions(ctx)
		if err != nil {
			d.monitor.SendDiagnostic(guildID,
				fmt.Sprintf("[Warden] Rule %s - %v", rule.Name(), err))
			if !platform.IsPermissionDenied(err) {
				// Permission failures are routine; anything else is an
				// unexpected error worth the system log
				logging.Error("warden rule %s failed in guild %d: %v", rule.Name(), guildID, err)
			}
			continue
		}

		if expelled {
			return true
		}
	}
	return false
}
