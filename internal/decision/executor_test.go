package decision

import (
	"errors"
	"testing"

	"go-defender/internal/models"
	"go-defender/internal/modlog"
	"go-defender/internal/platform"
)

type modCall struct {
	op       string
	guildID  uint64
	userID   uint64
	reason   string
	wipeDays int
}

type fakeModerator struct {
	calls   []modCall
	failOp  string
	failErr error
}

func (f *fakeModerator) call(c modCall) error {
	f.calls = append(f.calls, c)
	if f.failOp == c.op {
		return f.failErr
	}
	return nil
}

func (f *fakeModerator) Ban(guildID, userID uint64, reason string, wipeDays int) error {
	return f.call(modCall{op: "ban", guildID: guildID, userID: userID, reason: reason, wipeDays: wipeDays})
}

func (f *fakeModerator) Unban(guildID, userID uint64, reason string) error {
	return f.call(modCall{op: "unban", guildID: guildID, userID: userID, reason: reason})
}

func (f *fakeModerator) Kick(guildID, userID uint64, reason string) error {
	return f.call(modCall{op: "kick", guildID: guildID, userID: userID, reason: reason})
}

func (f *fakeModerator) DeleteMessage(guildID, channelID, messageID uint64) error {
	return f.call(modCall{op: "delete", guildID: guildID})
}

type fakeCases struct {
	cases []modlog.Case
}

func (f *fakeCases) CreateCase(c modlog.Case) (string, error) {
	f.cases = append(f.cases, c)
	return "case-1", nil
}

type fakeMonitor struct {
	diagnostics []string
}

func (f *fakeMonitor) SendDiagnostic(guildID uint64, text string) {
	f.diagnostics = append(f.diagnostics, text)
}

func newTestExecutor() (*Executor, *fakeModerator, *fakeCases, *fakeMonitor) {
	mod := &fakeModerator{}
	cases := &fakeCases{}
	monitor := &fakeMonitor{}
	return NewExecutor(mod, cases, monitor), mod, cases, monitor
}

func TestExecutorBanHonorsWipeDays(t *testing.T) {
	e, mod, cases, _ := newTestExecutor()

	outcome, err := e.Apply(ActionRequest{
		Action:   models.ActionBan,
		GuildID:  1,
		UserID:   7,
		Reason:   "Message spammer",
		WipeDays: 3,
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !outcome.Applied() {
		t.Fatalf("outcome = %+v, want applied", outcome)
	}

	if len(mod.calls) != 1 || mod.calls[0].op != "ban" || mod.calls[0].wipeDays != 3 {
		t.Errorf("moderator calls = %+v, want one ban with wipe 3", mod.calls)
	}
	if len(cases.cases) != 1 || cases.cases[0].Moderator != SelfModerator {
		t.Errorf("cases = %+v, want one self-moderated case", cases.cases)
	}
}

func TestExecutorSoftbanIsBanThenUnban(t *testing.T) {
	e, mod, cases, _ := newTestExecutor()

	outcome, err := e.Apply(ActionRequest{Action: models.ActionSoftban, GuildID: 1, UserID: 7})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !outcome.Applied() {
		t.Fatalf("outcome = %+v, want applied", outcome)
	}

	if len(mod.calls) != 2 || mod.calls[0].op != "ban" || mod.calls[1].op != "unban" {
		t.Fatalf("moderator calls = %+v, want ban then unban", mod.calls)
	}
	if mod.calls[0].wipeDays != 1 {
		t.Errorf("softban wipe = %d, want 1", mod.calls[0].wipeDays)
	}
	if len(cases.cases) != 1 {
		t.Errorf("cases = %d, want 1", len(cases.cases))
	}
}

func TestExecutorNoActionTouchesNothing(t *testing.T) {
	e, mod, cases, monitor := newTestExecutor()

	outcome, err := e.Apply(ActionRequest{Action: models.ActionNoAction, GuildID: 1, UserID: 7})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if outcome.Status != models.OutcomeNoAction {
		t.Errorf("outcome = %+v, want NoAction", outcome)
	}
	if len(mod.calls) != 0 || len(cases.cases) != 0 || len(monitor.diagnostics) != 0 {
		t.Error("NoAction must not touch the platform, cases, or monitor")
	}
}

func TestExecutorFailureGoesToMonitorNotCaller(t *testing.T) {
	e, mod, cases, monitor := newTestExecutor()
	mod.failOp = "ban"
	mod.failErr = &platform.APIError{Route: "ban", Status: 403}

	outcome, err := e.Apply(ActionRequest{Action: models.ActionBan, GuildID: 1, UserID: 7})
	if err != nil {
		t.Fatalf("platform failure must not surface as an error, got %v", err)
	}
	if outcome.Status != models.OutcomeFailed {
		t.Errorf("outcome = %+v, want failed", outcome)
	}

	if len(monitor.diagnostics) != 1 {
		t.Fatalf("monitor diagnostics = %d, want 1", len(monitor.diagnostics))
	}
	// Audit trail only exists on success
	if len(cases.cases) != 0 {
		t.Errorf("cases = %d, want 0 on failure", len(cases.cases))
	}
}

func TestExecutorUnrecognizedActionFailsLoudly(t *testing.T) {
	e, mod, _, _ := newTestExecutor()

	_, err := e.Apply(ActionRequest{Action: models.Action(99), GuildID: 1, UserID: 7})
	if err == nil {
		t.Fatal("unrecognized action must return an error")
	}
	if len(mod.calls) != 0 {
		t.Errorf("moderator must not be touched for an invalid action, got %+v", mod.calls)
	}
}

func TestExecutorFailedSoftbanUnbanIsReported(t *testing.T) {
	e, _, _, monitor := newTestExecutor()
	mod := e.mod.(*fakeModerator)
	mod.failOp = "unban"
	mod.failErr = errors.New("boom")

	outcome, err := e.Apply(ActionRequest{Action: models.ActionSoftban, GuildID: 1, UserID: 7})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	// The ban itself succeeded, so the softban counts as applied
	if !outcome.Applied() {
		t.Errorf("outcome = %+v, want applied", outcome)
	}
	if len(monitor.diagnostics) != 1 {
		t.Errorf("monitor diagnostics = %d, want 1 for the failed unban", len(monitor.diagnostics))
	}
}
