package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verifybot/internal/application"
)

func TestLogChannelPublish(t *testing.T) {
	guild := newFakeGuild()
	sink := NewLogChannel(guild, "log")

	event := application.VerificationEvent{
		RequesterID:    "111",
		RequesterLabel: "alpha",
		ExternalID:     "25CDF5286DC38DAD",
		ExternalLabel:  "Hunter",
		AllowListed:    true,
		Source:         application.SourceVerify,
		At:             time.Now(),
	}
	require.NoError(t, sink.Publish(context.Background(), event))
	require.Len(t, guild.embeds, 1)
	assert.Equal(t, "LOG: player verified", guild.embeds[0].Title)

	guild.sendErr = errors.New("missing access")
	assert.ErrorIs(t, sink.Publish(context.Background(), event), guild.sendErr)
}
