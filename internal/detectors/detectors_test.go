package detectors

import (
	"errors"

	"go-defender/internal/decision"
	"go-defender/internal/models"
	"go-defender/internal/modlog"
)

var errTest = errors.New("platform unavailable")

// Shared fakes for the detector tests. Detectors run against a real
// Executor so the tests exercise the full action path down to the
// platform boundary.

type modCall struct {
	op       string
	guildID  uint64
	userID   uint64
	reason   string
	wipeDays int
}

type fakeModerator struct {
	calls   []modCall
	failErr error
}

func (f *fakeModerator) call(c modCall) error {
	f.calls = append(f.calls, c)
	return f.failErr
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

func (f *fakeModerator) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

type fakeCaseWriter struct {
	cases []modlog.Case
}

func (f *fakeCaseWriter) CreateCase(c modlog.Case) (string, error) {
	f.cases = append(f.cases, c)
	return "case-1", nil
}

type fakeMonitor struct {
	diagnostics []string
}

func (f *fakeMonitor) SendDiagnostic(guildID uint64, text string) {
	f.diagnostics = append(f.diagnostics, text)
}

type notification struct {
	guildID uint64
	userID  uint64 // nonzero for direct messages
	text    string
	opts    NotifyOptions
}

type fakeNotifier struct {
	sent  []notification
	dmErr error
}

func (f *fakeNotifier) Notify(guildID uint64, text string, opts NotifyOptions) error {
	f.sent = append(f.sent, notification{guildID: guildID, text: text, opts: opts})
	return nil
}

func (f *fakeNotifier) NotifyMember(guildID, userID uint64, text string, identity *models.Member) error {
	if f.dmErr != nil {
		return f.dmErr
	}
	f.sent = append(f.sent, notification{guildID: guildID, userID: userID, text: text})
	return nil
}

func newTestExecutor() (*decision.Executor, *fakeModerator, *fakeCaseWriter, *fakeMonitor) {
	mod := &fakeModerator{}
	cases := &fakeCaseWriter{}
	monitor := &fakeMonitor{}
	return decision.NewExecutor(mod, cases, monitor), mod, cases, monitor
}
