package state

import (
	"sync"
	"time"

	"go-defender/internal/models"
)

// JoinWindow is a process-wide cache of recent member joins per guild,
// bounded at WindowCap with FIFO eviction.
type JoinWindow struct {
	mu     sync.RWMutex
	cap    int
	guilds map[uint64][]models.Member
}

func NewJoinWindow() *JoinWindow {
	return &JoinWindow{
		cap:    WindowCap,
		guilds: make(map[uint64][]models.Member),
	}
}

func (w *JoinWindow) Record(member models.Member) {
	w.mu.Lock()
	defer w.mu.Unlock()

	window := w.guilds[member.GuildID]
	if len(window) >= w.cap {
		copy(window, window[1:])
		window[len(window)-1] = member
	} else {
		window = append(window, member)
	}
	w.guilds[member.GuildID] = window
}

// CountSince returns how many stored joins for the guild happened strictly
// after cutoff. Unknown guilds count zero.
func (w *JoinWindow) CountSince(guildID uint64, cutoff time.Time) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	recent := 0
	for _, m := range w.guilds[guildID] {
		if m.JoinedAt.After(cutoff) {
			recent++
		}
	}
	return recent
}

func (w *JoinWindow) Len(guildID uint64) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.guilds[guildID])
}
