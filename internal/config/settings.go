package config

import (
	"sync"

	"go-defender/internal/models"
)

// GuildSettings holds the per-guild automod configuration. Read-only to the
// detection core; command handlers mutate it through the store.
type GuildSettings struct {
	GuildID       uint64
	Enabled       bool
	CountMessages bool

	NotifyChannelID  uint64
	MonitorChannelID uint64
	PingRoleID       uint64

	InviteFilterEnabled bool
	InviteFilterAction  models.Action
	InviteFilterRank    models.Rank

	RaiderDetectionEnabled  bool
	RaiderDetectionMessages int
	RaiderDetectionMinutes  int
	RaiderDetectionAction   models.Action
	RaiderDetectionRank     models.Rank
	RaiderDetectionWipe     int

	JoinMonitorEnabled   bool
	JoinMonitorUsers     int
	JoinMonitorMinutes   int
	JoinMonitorSuspHours int

	SilenceEnabled bool
	SilenceRank    models.Rank

	WardenEnabled bool
}

func defaultGuildSettings(guildID uint64) *GuildSettings {
	return &GuildSettings{
		GuildID:                 guildID,
		Enabled:                 false,
		CountMessages:           true,
		InviteFilterAction:      models.ActionNoAction,
		InviteFilterRank:        models.Rank4,
		RaiderDetectionMessages: 15,
		RaiderDetectionMinutes:  5,
		RaiderDetectionAction:   models.ActionBan,
		RaiderDetectionRank:     models.Rank3,
		RaiderDetectionWipe:     1,
		JoinMonitorUsers:        10,
		JoinMonitorMinutes:      5,
	}
}

// SettingsStore is the process-wide per-guild settings cache. Entries are
// created lazily on first event for a guild.
type SettingsStore struct {
	mu     sync.RWMutex
	guilds map[uint64]*GuildSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		guilds: make(map[uint64]*GuildSettings),
	}
}

// Guild returns a copy of the settings for guildID so callers never observe
// a mutation mid-dispatch.
func (s *SettingsStore) Guild(guildID uint64) GuildSettings {
	s.mu.RLock()
	gs, ok := s.guilds[guildID]
	if ok {
		out := *gs
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gs, ok = s.guilds[guildID]; !ok {
		gs = defaultGuildSettings(guildID)
		s.guilds[guildID] = gs
	}
	return *gs
}

// Update applies fn to the stored settings for guildID under the write lock.
func (s *SettingsStore) Update(guildID uint64, fn func(*GuildSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, ok := s.guilds[guildID]
	if !ok {
		gs = defaultGuildSettings(guildID)
		s.guilds[guildID] = gs
	}
	fn(gs)
}
