package notifier

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-defender/internal/config"
	"go-defender/internal/detectors"
	"go-defender/internal/logging"
	"go-defender/internal/models"
	"go-defender/pkg/util"
)

const embedColor = 0xED4245

// DiscordNotifier delivers guild notifications, subscriber DMs and monitor
// diagnostics over a shared Discord session. Channel routing comes from the
// guild settings store.
type DiscordNotifier struct {
	session  *discordgo.Session
	settings *config.SettingsStore
}

func NewDiscordNotifier(session *discordgo.Session, settings *config.SettingsStore) *DiscordNotifier {
	return &DiscordNotifier{
		session:  session,
		settings: settings,
	}
}

// Notify sends a user-facing notification to the guild's configured
// notification channel.
func (n *DiscordNotifier) Notify(guildID uint64, text string, opts detectors.NotifyOptions) error {
	settings := n.settings.Guild(guildID)
	if settings.NotifyChannelID == 0 {
		return fmt.Errorf("no notification channel configured for guild %d", guildID)
	}

	if opts.Ping && settings.PingRoleID != 0 {
		text = fmt.Sprintf("<@&%d> %s", settings.PingRoleID, text)
	}
	if opts.LinkToMessageID != 0 {
		text = fmt.Sprintf("%s\nhttps://discord.com/channels/%d/%d/%d",
			text, guildID, opts.LinkToChannelID, opts.LinkToMessageID)
	}

	send := &discordgo.MessageSend{Content: text}
	if opts.Identity != nil {
		send.Embed = identityEmbed(opts.Identity)
	}
	if opts.Attachment != nil {
		send.Files = []*discordgo.File{{
			Name:        opts.Attachment.Name,
			ContentType: "text/plain",
			Reader:      bytes.NewReader(opts.Attachment.Content),
		}}
	}

	_, err := n.session.ChannelMessageSendComplex(util.Snowflake(settings.NotifyChannelID), send)
	if err != nil {
		return fmt.Errorf("guild notification failed: %w", err)
	}
	return nil
}

// NotifyMember sends a direct message. Fails when the recipient has DMs
// closed; callers treat that as best-effort.
func (n *DiscordNotifier) NotifyMember(guildID, userID uint64, text string, identity *models.Member) error {
	channel, err := n.session.UserChannelCreate(util.Snowflake(userID))
	if err != nil {
		return fmt.Errorf("dm channel create failed: %w", err)
	}

	send := &discordgo.MessageSend{Content: text}
	if identity != nil {
		send.Embed = identityEmbed(identity)
	}

	if _, err := n.session.ChannelMessageSendComplex(channel.ID, send); err != nil {
		return fmt.Errorf("dm send failed: %w", err)
	}
	return nil
}

// SendDiagnostic posts an internal diagnostic to the guild's monitor
// channel, separate from user-facing notifications. Delivery problems are
// only logged; the monitor must never take down the pipeline.
func (n *DiscordNotifier) SendDiagnostic(guildID uint64, text string) {
	settings := n.settings.Guild(guildID)
	if settings.MonitorChannelID == 0 {
		logging.Warn("monitor (guild %d, no channel): %s", guildID, text)
		return
	}

	_, err := n.session.ChannelMessageSend(util.Snowflake(settings.MonitorChannelID), text)
	if err != nil {
		logging.Warn("monitor delivery failed for guild %d: %v", guildID, err)
	}
}

// identityEmbed renders the identity summary card attached to suspicion
// notifications.
func identityEmbed(member *models.Member) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: member.Username,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("<@%d> (`%d`)", member.UserID, member.UserID),
				Inline: true,
			},
			{
				Name:   "Account created",
				Value:  fmt.Sprintf("<t:%d:F>", member.CreatedAt.Unix()),
				Inline: true,
			},
			{
				Name:   "Joined",
				Value:  fmt.Sprintf("<t:%d:F>", member.JoinedAt.Unix()),
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
