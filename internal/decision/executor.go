package decision

import (
	"fmt"

	"go-defender/internal/logging"
	"go-defender/internal/models"
	"go-defender/internal/modlog"
	"go-defender/internal/platform"
)

// SelfModerator is the moderator identity recorded on cases the engine
// creates on its own authority.
const SelfModerator = "defender"

// Moderator is the platform moderation surface. Every call is fallible and
// must never be retried by callers.
type Moderator interface {
	Ban(guildID, userID uint64, reason string, wipeDays int) error
	Unban(guildID, userID uint64, reason string) error
	Kick(guildID, userID uint64, reason string) error
	DeleteMessage(guildID, channelID, messageID uint64) error
}

// CaseWriter appends audit records for successful expulsions.
type CaseWriter interface {
	CreateCase(c modlog.Case) (string, error)
}

// Monitor receives internal diagnostics, on a channel separate from
// user-facing notifications.
type Monitor interface {
	SendDiagnostic(guildID uint64, text string)
}

// ActionRequest describes one remediation to apply.
type ActionRequest struct {
	Action    models.Action
	GuildID   uint64
	UserID    uint64
	ChannelID uint64
	MessageID uint64
	Reason    string
	WipeDays  int
}

// Executor applies remediation actions and owns the escalation policy:
// softban is ban-then-unban, ban honors the configured history wipe, and a
// successful expulsion always produces a modlog case.
type Executor struct {
	mod     Moderator
	cases   CaseWriter
	monitor Monitor
}

func NewExecutor(mod Moderator, cases CaseWriter, monitor Monitor) *Executor {
	return &Executor{
		mod:     mod,
		cases:   cases,
		monitor: monitor,
	}
}

// Apply performs the requested action. Platform failures are reported to
// the monitor and reflected in the outcome, never returned as an error.
// The error return is reserved for an unrecognized action value, which is
// a deployment defect and must fail loudly.
func (e *Executor) Apply(req ActionRequest) (models.Outcome, error) {
	var err error

	switch req.Action {
	case models.ActionNoAction:
		return models.Outcome{Status: models.OutcomeNoAction}, nil
	case models.ActionDelete:
		err = e.mod.DeleteMessage(req.GuildID, req.ChannelID, req.MessageID)
	case models.ActionKick:
		err = e.mod.Kick(req.GuildID, req.UserID, req.Reason)
	case models.ActionSoftban:
		// Net effect is a one-day message purge without permanent exclusion
		err = e.mod.Ban(req.GuildID, req.UserID, req.Reason, 1)
		if err == nil {
			if uerr := e.mod.Unban(req.GuildID, req.UserID, req.Reason); uerr != nil {
				e.reportFailure(req, uerr)
			}
		}
	case models.ActionBan:
		err = e.mod.Ban(req.GuildID, req.UserID, req.Reason, req.WipeDays)
	default:
		return models.Outcome{Status: models.OutcomeFailed},
			fmt.Errorf("unrecognized action %d for guild %d", uint8(req.Action), req.GuildID)
	}

	if err != nil {
		e.reportFailure(req, err)
		return models.Outcome{Status: models.OutcomeFailed, Err: err}, nil
	}

	if req.Action.Expels() {
		e.writeCase(req)
	}

	return models.Outcome{Status: models.OutcomeApplied}, nil
}

// DeleteMessage removes a single message outside of any configured action,
// e.g. the invite filter's unconditional delete. No case is recorded.
func (e *Executor) DeleteMessage(guildID, channelID, messageID uint64) models.Outcome {
	if err := e.mod.DeleteMessage(guildID, channelID, messageID); err != nil {
		e.reportFailure(ActionRequest{
			Action:    models.ActionDelete,
			GuildID:   guildID,
			ChannelID: channelID,
			MessageID: messageID,
		}, err)
		return models.Outcome{Status: models.OutcomeFailed, Err: err}
	}
	return models.Outcome{Status: models.OutcomeApplied}
}

func (e *Executor) writeCase(req ActionRequest) {
	caseID, err := e.cases.CreateCase(modlog.Case{
		GuildID:   req.GuildID,
		UserID:    req.UserID,
		Action:    req.Action,
		Reason:    req.Reason,
		Moderator: SelfModerator,
	})
	if err != nil {
		logging.Warn("modlog case write failed for guild %d user %d: %v", req.GuildID, req.UserID, err)
		return
	}
	logging.Debug("modlog case %s: %s user %d in guild %d", caseID, req.Action, req.UserID, req.GuildID)
}

func (e *Executor) reportFailure(req ActionRequest, err error) {
	kind := "transient failure"
	if platform.IsPermissionDenied(err) {
		kind = "permission denied"
	}
	e.monitor.SendDiagnostic(req.GuildID,
		fmt.Sprintf("Failed to %s user %d (%s): %v", req.Action, req.UserID, kind, err))
	logging.Error("action %s failed for guild %d user %d: %v", req.Action, req.GuildID, req.UserID, err)
}
