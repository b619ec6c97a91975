package ranks

import (
	"time"

	"go-defender/internal/models"
	"go-defender/internal/state"
)

// StaffChecker reports whether a member is platform staff for a guild.
type StaffChecker interface {
	IsStaff(guildID, userID uint64) bool
}

// Resolver classifies a member into an ordinal trust rank.
type Resolver interface {
	Rank(member models.Member) models.Rank
}

const (
	// Members older than this in the guild are considered established.
	defaultEstablishedAfter = 14 * 24 * time.Hour
	// Recent joiners below this message count stay at the lowest rank.
	defaultMessageFloor = 50
)

// HeuristicResolver ranks members from guild tenure and activity: staff are
// Rank1, established members Rank2, recent joiners Rank3, and recent
// joiners with little message history Rank4.
type HeuristicResolver struct {
	staff            StaffChecker
	counter          *state.MessageCounter
	establishedAfter time.Duration
	messageFloor     uint64
}

func NewHeuristicResolver(staff StaffChecker, counter *state.MessageCounter) *HeuristicResolver {
	return &HeuristicResolver{
		staff:            staff,
		counter:          counter,
		establishedAfter: defaultEstablishedAfter,
		messageFloor:     defaultMessageFloor,
	}
}

func (r *HeuristicResolver) Rank(member models.Member) models.Rank {
	if r.staff.IsStaff(member.GuildID, member.UserID) {
		return models.Rank1
	}

	if !member.JoinedAt.IsZero() && time.Since(member.JoinedAt) >= r.establishedAfter {
		return models.Rank2
	}

	if r.counter.Count(member.GuildID, member.UserID) >= r.messageFloor {
		return models.Rank3
	}
	return models.Rank4
}
