package discord

import (
	"context"
	"errors"
	"fmt"
	"verifybot/internal/application"

	"github.com/bwmarrin/discordgo"
)

type roleAdder interface {
	memberFetcher
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// RoleGranter adds the always-roles after a verification and the clan role
// when the player is on the allow list.
type RoleGranter struct {
	api           roleAdder
	guildID       string
	alwaysRoleIDs []string
	clanRoleID    string
	logger        application.Logger
}

func NewRoleGranter(api roleAdder, guildID string, alwaysRoleIDs []string, clanRoleID string, logger application.Logger) *RoleGranter {
	return &RoleGranter{
		api:           api,
		guildID:       guildID,
		alwaysRoleIDs: alwaysRoleIDs,
		clanRoleID:    clanRoleID,
		logger:        logger,
	}
}

func (g *RoleGranter) Grant(ctx context.Context, requesterID string, allowListed bool) (application.GrantOutcome, error) {
	if g.guildID == "" || (len(g.alwaysRoleIDs) == 0 && g.clanRoleID == "") {
		return application.GrantOutcome{Reason: reasonNoRoles}, nil
	}

	_, err := g.api.GuildMember(g.guildID, requesterID, discordgo.WithContext(ctx))
	if isUnknownMember(err) {
		return application.GrantOutcome{Reason: reasonNotInGuild}, nil
	}
	if err != nil {
		return application.GrantOutcome{}, fmt.Errorf("failed to fetch member %s: %w", requesterID, err)
	}

	var errs []error
	outcome := application.GrantOutcome{BaseRolesGranted: true}
	for _, roleID := range g.alwaysRoleIDs {
		if err := g.api.GuildMemberRoleAdd(g.guildID, requesterID, roleID, discordgo.WithContext(ctx)); err != nil {
			g.logger.Warn("failed to add role %s to %s: %v", roleID, requesterID, err)
			outcome.BaseRolesGranted = false
			errs = append(errs, fmt.Errorf("role %s: %w", roleID, err))
		}
	}

	if allowListed && g.clanRoleID != "" {
		if err := g.api.GuildMemberRoleAdd(g.guildID, requesterID, g.clanRoleID, discordgo.WithContext(ctx)); err != nil {
			g.logger.Warn("failed to add clan role to %s: %v", requesterID, err)
			outcome.Reason = reasonClanRoleError
			errs = append(errs, fmt.Errorf("clan role %s: %w", g.clanRoleID, err))
		} else {
			outcome.AllowListRoleGranted = true
		}
	}

	return outcome, errors.Join(errs...)
}
