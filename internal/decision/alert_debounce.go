package decision

import (
	"sync"
	"time"
)

// RaidAlertCoolDown is how long a guild stays quiet after a raid-style
// alert before another may fire.
const RaidAlertCoolDown = 15 * time.Minute

// AlertDebouncer tracks the last raid-style alert per guild and suppresses
// repeats within the cool-down. The check-then-set is atomic per guild so
// concurrent events can never double-fire an alert.
type AlertDebouncer struct {
	mu        sync.Mutex
	lastAlert map[uint64]time.Time
}

func NewAlertDebouncer() *AlertDebouncer {
	return &AlertDebouncer{
		lastAlert: make(map[uint64]time.Time),
	}
}

// ShouldAlert returns true and records now as the last alert time iff no
// alert for the guild fired after now minus coolDown. A false return does
// not mutate state.
func (d *AlertDebouncer) ShouldAlert(guildID uint64, now time.Time, coolDown time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.lastAlert[guildID]; ok && last.After(now.Add(-coolDown)) {
		return false
	}
	d.lastAlert[guildID] = now
	return true
}

// Remaining returns how much of the cool-down is left for the guild, zero
// if an alert may fire now.
func (d *AlertDebouncer) Remaining(guildID uint64, coolDown time.Duration) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	last, ok := d.lastAlert[guildID]
	if !ok {
		return 0
	}

	remaining := coolDown - time.Since(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (d *AlertDebouncer) Reset(guildID uint64) {
	d.mu.Lock()
	delete(d.lastAlert, guildID)
	d.mu.Unlock()
}
