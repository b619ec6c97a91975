package state

import (
	"sync"
	"time"
)

// StaffActivity tracks the last time a staff member was seen active in each
// guild. Messages, edits and reactions from staff all refresh it.
type StaffActivity struct {
	mu       sync.RWMutex
	lastSeen map[uint64]time.Time
}

func NewStaffActivity() *StaffActivity {
	return &StaffActivity{
		lastSeen: make(map[uint64]time.Time),
	}
}

func (s *StaffActivity) Refresh(guildID uint64) {
	s.mu.Lock()
	s.lastSeen[guildID] = time.Now()
	s.mu.Unlock()
}

// LastSeen returns the last staff activity time and whether any was
// recorded for the guild.
func (s *StaffActivity) LastSeen(guildID uint64) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lastSeen[guildID]
	return t, ok
}
