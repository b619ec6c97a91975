package config

import "sync"

// MemberSettings holds per-member preferences. Currently only the join
// suspicion subscription: a nonzero SuspicionHours means the member wants a
// direct message whenever an account younger than that joins.
type MemberSettings struct {
	SuspicionHours int
}

type memberKey struct {
	guildID uint64
	userID  uint64
}

// MemberStore tracks per-member settings and the set of suspicion
// subscribers per guild.
type MemberStore struct {
	mu          sync.RWMutex
	members     map[memberKey]MemberSettings
	subscribers map[uint64][]uint64
}

func NewMemberStore() *MemberStore {
	return &MemberStore{
		members:     make(map[memberKey]MemberSettings),
		subscribers: make(map[uint64][]uint64),
	}
}

func (m *MemberStore) Member(guildID, userID uint64) MemberSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.members[memberKey{guildID, userID}]
}

// Subscribers returns the user IDs subscribed to join suspicion
// notifications in guildID, in subscription order.
func (m *MemberStore) Subscribers(guildID uint64) []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subs := m.subscribers[guildID]
	out := make([]uint64, len(subs))
	copy(out, subs)
	return out
}

// Subscribe sets a member's suspicion threshold. Hours of zero removes the
// subscription.
func (m *MemberStore) Subscribe(guildID, userID uint64, hours int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memberKey{guildID, userID}
	if hours <= 0 {
		delete(m.members, key)
		subs := m.subscribers[guildID]
		for i, id := range subs {
			if id == userID {
				m.subscribers[guildID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		return
	}

	if _, exists := m.members[key]; !exists {
		m.subscribers[guildID] = append(m.subscribers[guildID], userID)
	}
	m.members[key] = MemberSettings{SuspicionHours: hours}
}
