package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-defender/internal/logging"
	"go-defender/pkg/util"
)

// staffPermissions marks a member as platform staff when any of these are
// granted by their roles.
const staffPermissions = discordgo.PermissionAdministrator |
	discordgo.PermissionKickMembers |
	discordgo.PermissionBanMembers

type Session struct {
	discord *discordgo.Session
	BotID   uint64
}

// NewSession creates the Discord session with the intents the detection
// chain needs: guild messages with content, members and reactions.
func NewSession(token string) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	dg.StateEnabled = true

	return &Session{discord: dg}, nil
}

func (s *Session) Discord() *discordgo.Session {
	return s.discord
}

// Connect opens the gateway connection.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		s.BotID = util.MustSnowflake(s.discord.State.User.ID)
		logging.Info("Bot ID: %d", s.BotID)
	}

	logging.Info("Discord bot connected")
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// IsStaff reports whether the member's roles grant moderation permissions.
// Satisfies ranks.StaffChecker.
func (s *Session) IsStaff(guildID, userID uint64) bool {
	guild, err := s.discord.State.Guild(util.Snowflake(guildID))
	if err != nil {
		return false
	}

	member, err := s.discord.State.Member(guild.ID, util.Snowflake(userID))
	if err != nil {
		return false
	}

	for _, roleID := range member.Roles {
		role, err := s.discord.State.Role(guild.ID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&int64(staffPermissions) != 0 {
			return true
		}
	}
	return false
}
