// Package warden exposes the declarative rule engine to the detection core
// as a capability interface. The core never depends on concrete rule types;
// it only evaluates conditions and runs actions.
package warden

import (
	"sync"

	"go-defender/internal/models"
)

type Event uint8

const (
	EventOnMessage Event = iota + 1
	EventOnUserJoin
)

// Context carries the event data a rule may inspect. Exactly one of
// Message and Member is set, matching the rule's Event.
type Context struct {
	Rank    models.Rank
	Message *models.Message
	Member  *models.Member
}

// Rule is one externally-defined rule. DoActions reports whether the
// actions expelled the subject; any error it returns is forwarded to the
// monitor by the dispatcher and never aborts rule evaluation.
type Rule interface {
	Name() string
	Event() Event
	SatisfiesConditions(ctx *Context) bool
	DoActions(ctx *Context) (expelled bool, err error)
}

// Registry holds the active rules per guild in registration order.
type Registry struct {
	mu    sync.RWMutex
	rules map[uint64][]Rule
}

func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[uint64][]Rule),
	}
}

func (r *Registry) Add(guildID uint64, rule Rule) {
	r.mu.Lock()
	r.rules[guildID] = append(r.rules[guildID], rule)
	r.mu.Unlock()
}

func (r *Registry) Remove(guildID uint64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rules := r.rules[guildID]
	for i, rule := range rules {
		if rule.Name() == name {
			r.rules[guildID] = append(rules[:i], rules[i+1:]...)
			return
		}
	}
}

// RulesFor returns the guild's rules for event, in registration order.
func (r *Registry) RulesFor(guildID uint64, event Event) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, rule := range r.rules[guildID] {
		if rule.Event() == event {
			out = append(out, rule)
		}
	}
	return out
}
