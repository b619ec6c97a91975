package state

import (
	"fmt"
	"sync"
	"time"

	"go-defender/internal/models"
)

// WindowCap is the hard capacity bound of every rolling window. Oldest
// entries are evicted FIFO once a key reaches it.
const WindowCap = 100

type userKey struct {
	guildID uint64
	userID  uint64
}

// MessageWindow is a process-wide cache of the most recent messages per
// guild member. Insertion order matches arrival order, so timestamps are
// monotonically non-decreasing per key.
type MessageWindow struct {
	mu    sync.RWMutex
	cap   int
	users map[userKey][]models.Message
}

func NewMessageWindow() *MessageWindow {
	return &MessageWindow{
		cap:   WindowCap,
		users: make(map[userKey][]models.Message),
	}
}

// Record appends msg to the author's window, evicting the oldest entry if
// the window is full.
func (w *MessageWindow) Record(msg models.Message) {
	key := userKey{msg.GuildID, msg.AuthorID}

	w.mu.Lock()
	defer w.mu.Unlock()

	window := w.users[key]
	if len(window) >= w.cap {
		copy(window, window[1:])
		window[len(window)-1] = msg
	} else {
		window = append(window, msg)
	}
	w.users[key] = window
}

// CountSince returns how many stored messages for the member are strictly
// newer than cutoff. Unknown keys count zero.
func (w *MessageWindow) CountSince(guildID, userID uint64, cutoff time.Time) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	recent := 0
	for _, m := range w.users[userKey{guildID, userID}] {
		if m.CreatedAt.After(cutoff) {
			recent++
		}
	}
	return recent
}

// Log renders the member's stored messages newest-first, capped at limit
// lines. Used for the attachment sent alongside raider expulsions.
func (w *MessageWindow) Log(guildID, userID uint64, limit int) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	window := w.users[userKey{guildID, userID}]
	lines := make([]string, 0, limit)
	for i := len(window) - 1; i >= 0 && len(lines) < limit; i-- {
		m := window[i]
		lines = append(lines, fmt.Sprintf("[%s] %s", m.CreatedAt.UTC().Format("2006-01-02 15:04:05"), m.Content))
	}
	return lines
}

// Len reports the current window size for a member.
func (w *MessageWindow) Len(guildID, userID uint64) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.users[userKey{guildID, userID}])
}
