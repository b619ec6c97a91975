package state

import "sync"

// MessageCounter keeps lifetime per-member message counts. The rank
// resolver uses these to promote active members out of the lowest ranks.
type MessageCounter struct {
	mu     sync.RWMutex
	counts map[userKey]uint64
}

func NewMessageCounter() *MessageCounter {
	return &MessageCounter{
		counts: make(map[userKey]uint64),
	}
}

func (c *MessageCounter) Increment(guildID, userID uint64) {
	c.mu.Lock()
	c.counts[userKey{guildID, userID}]++
	c.mu.Unlock()
}

func (c *MessageCounter) Count(guildID, userID uint64) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[userKey{guildID, userID}]
}
