package bot

import (
	"github.com/bwmarrin/discordgo"

	"go-defender/internal/dispatcher"
	"go-defender/internal/logging"
	"go-defender/internal/models"
	"go-defender/internal/watchdog"
	"go-defender/pkg/util"
)

// GatewayComponent is the watchdog component name the handlers beat on
// every inbound event.
const GatewayComponent = "gateway"

// SetupEventHandlers translates gateway events into dispatcher calls. Each
// handler runs on its own goroutine under discordgo, so events dispatch
// concurrently; the shared caches behind the dispatcher are safe for that.
func (s *Session) SetupEventHandlers(d *dispatcher.Dispatcher, wd *watchdog.Watchdog) {
	logging.Info("Setting up Discord event handlers...")

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		wd.Heartbeat(GatewayComponent)
		if m.Author == nil {
			return
		}

		msg := messageModel(m.Message)
		author := s.memberModel(m.GuildID, m.Author, m.Member)

		if err := d.OnMessage(msg, author); err != nil {
			// Invalid action configuration; this is a deployment defect
			logging.Critical("dispatcher rejected message in guild %s: %v", m.GuildID, err)
		}
	})

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
		wd.Heartbeat(GatewayComponent)
		if m.User == nil {
			return
		}
		d.OnMemberJoin(s.memberModel(m.GuildID, m.User, m.Member))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageUpdate) {
		if m.Author == nil {
			return
		}
		d.OnMessageEdit(s.memberModel(m.GuildID, m.Author, m.Member))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.MessageReactionAdd) {
		d.OnReaction(s.reactorModel(r.GuildID, r.UserID, r.Member))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.MessageReactionRemove) {
		d.OnReaction(s.reactorModel(r.GuildID, r.UserID, nil))
	})
}

func messageModel(m *discordgo.Message) models.Message {
	return models.Message{
		GuildID:    util.MustSnowflake(m.GuildID),
		ChannelID:  util.MustSnowflake(m.ChannelID),
		MessageID:  util.MustSnowflake(m.ID),
		AuthorID:   util.MustSnowflake(m.Author.ID),
		AuthorName: m.Author.Username,
		AuthorBot:  m.Author.Bot,
		Content:    m.Content,
		CreatedAt:  m.Timestamp,
	}
}

// memberModel builds the member view of a user. JoinedAt comes from the
// member payload when the gateway includes one, otherwise from state; the
// account creation time is derived from the user's snowflake.
func (s *Session) memberModel(guildID string, user *discordgo.User, member *discordgo.Member) models.Member {
	out := models.Member{
		GuildID:  util.MustSnowflake(guildID),
		UserID:   util.MustSnowflake(user.ID),
		Username: user.Username,
		Bot:      user.Bot,
	}

	if created, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		out.CreatedAt = created
	}

	if member == nil {
		member, _ = s.discord.State.Member(guildID, user.ID)
	}
	if member != nil {
		out.JoinedAt = member.JoinedAt
	}

	return out
}

func (s *Session) reactorModel(guildID, userID string, member *discordgo.Member) models.Member {
	var user *discordgo.User
	if member != nil {
		user = member.User
	}
	if user == nil {
		if cached, err := s.discord.State.Member(guildID, userID); err == nil {
			member = cached
			user = cached.User
		}
	}
	if user == nil {
		user = &discordgo.User{ID: userID}
	}
	return s.memberModel(guildID, user, member)
}
