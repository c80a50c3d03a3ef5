package discord

import (
	"context"
	"fmt"
	"verifybot/internal/application"

	"github.com/bwmarrin/discordgo"
)

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// LogChannel posts verification events to an admin text channel.
type LogChannel struct {
	api       embedSender
	channelID string
}

func NewLogChannel(api embedSender, channelID string) *LogChannel {
	return &LogChannel{api: api, channelID: channelID}
}

func (l *LogChannel) Publish(ctx context.Context, event application.VerificationEvent) error {
	if _, err := l.api.ChannelMessageSendEmbed(l.channelID, logEmbed(event), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post to log channel %s: %w", l.channelID, err)
	}
	return nil
}
