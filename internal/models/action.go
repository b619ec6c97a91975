package models

import "fmt"

// Action is the closed set of remediations the engine can take against a
// subject. Values are stable because they are stored in guild settings.
type Action uint8

const (
	ActionNoAction Action = iota
	ActionDelete
	ActionKick
	ActionSoftban
	ActionBan
)

func (a Action) String() string {
	switch a {
	case ActionNoAction:
		return "none"
	case ActionDelete:
		return "delete"
	case ActionKick:
		return "kick"
	case ActionSoftban:
		return "softban"
	case ActionBan:
		return "ban"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(a))
	}
}

// Expels reports whether the action removes the subject from the guild.
func (a Action) Expels() bool {
	return a == ActionKick || a == ActionSoftban || a == ActionBan
}

type OutcomeStatus uint8

const (
	OutcomeNoAction OutcomeStatus = iota
	OutcomeApplied
	OutcomeFailed
)

// Outcome is the result of a single ActionExecutor invocation. Created per
// call, never persisted.
type Outcome struct {
	Status OutcomeStatus
	Err    error
}

func (o Outcome) Applied() bool {
	return o.Status == OutcomeApplied
}
