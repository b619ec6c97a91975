package config

import (
	"sync"
	"testing"

	"go-defender/internal/models"
)

func TestGuildReturnsDefaultsLazily(t *testing.T) {
	s := NewSettingsStore()

	gs := s.Guild(1)
	if gs.Enabled {
		t.Error("new guilds must start disabled")
	}
	if gs.RaiderDetectionMessages != 15 || gs.RaiderDetectionMinutes != 5 {
		t.Errorf("raider defaults = %d msgs / %d min, want 15 / 5",
			gs.RaiderDetectionMessages, gs.RaiderDetectionMinutes)
	}
	if gs.RaiderDetectionAction != models.ActionBan {
		t.Errorf("raider default action = %s, want ban", gs.RaiderDetectionAction)
	}
	if gs.JoinMonitorUsers != 10 || gs.JoinMonitorMinutes != 5 {
		t.Errorf("join monitor defaults = %d users / %d min, want 10 / 5",
			gs.JoinMonitorUsers, gs.JoinMonitorMinutes)
	}
}

func TestGuildReturnsACopy(t *testing.T) {
	s := NewSettingsStore()

	gs := s.Guild(1)
	gs.Enabled = true
	gs.RaiderDetectionMessages = 99

	if fresh := s.Guild(1); fresh.Enabled || fresh.RaiderDetectionMessages != 15 {
		t.Error("mutating the returned copy must not affect the store")
	}
}

func TestUpdatePersists(t *testing.T) {
	s := NewSettingsStore()

	s.Update(1, func(gs *GuildSettings) {
		gs.Enabled = true
		gs.InviteFilterEnabled = true
		gs.InviteFilterAction = models.ActionKick
	})

	gs := s.Guild(1)
	if !gs.Enabled || !gs.InviteFilterEnabled || gs.InviteFilterAction != models.ActionKick {
		t.Errorf("settings = %+v, update not visible", gs)
	}
	if other := s.Guild(2); other.Enabled {
		t.Error("update must not leak into other guilds")
	}
}

func TestSettingsStoreConcurrentAccess(t *testing.T) {
	s := NewSettingsStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Update(uint64(n%4), func(gs *GuildSettings) { gs.Enabled = true })
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = s.Guild(uint64(n % 4))
		}(i)
	}
	wg.Wait()

	for g := uint64(0); g < 4; g++ {
		if !s.Guild(g).Enabled {
			t.Errorf("guild %d not enabled after concurrent updates", g)
		}
	}
}

func TestMemberSubscriptions(t *testing.T) {
	m := NewMemberStore()

	m.Subscribe(1, 50, 48)
	m.Subscribe(1, 51, 6)
	m.Subscribe(2, 50, 12)

	if got := m.Subscribers(1); len(got) != 2 || got[0] != 50 || got[1] != 51 {
		t.Errorf("subscribers = %v, want [50 51] in order", got)
	}
	if m.Member(1, 50).SuspicionHours != 48 {
		t.Errorf("hours = %d, want 48", m.Member(1, 50).SuspicionHours)
	}

	// Re-subscribing updates the threshold without duplicating the entry.
	m.Subscribe(1, 50, 24)
	if got := m.Subscribers(1); len(got) != 2 {
		t.Errorf("subscribers = %v, re-subscribe must not duplicate", got)
	}
	if m.Member(1, 50).SuspicionHours != 24 {
		t.Errorf("hours = %d, want 24 after update", m.Member(1, 50).SuspicionHours)
	}

	// Zero hours unsubscribes.
	m.Subscribe(1, 50, 0)
	if got := m.Subscribers(1); len(got) != 1 || got[0] != 51 {
		t.Errorf("subscribers = %v, want [51] after unsubscribe", got)
	}
	if m.Member(1, 50).SuspicionHours != 0 {
		t.Error("unsubscribed member must have no threshold")
	}

	// Guild 2 untouched throughout.
	if got := m.Subscribers(2); len(got) != 1 || got[0] != 50 {
		t.Errorf("guild 2 subscribers = %v, want [50]", got)
	}
}
