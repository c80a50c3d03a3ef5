package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/bwmarrin/discordgo"
)

type memberFetcher interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// AdminGuard grants admin rights to configured user ids and to members holding
// the admin role in the primary guild. Membership is checked on every call.
type AdminGuard struct {
	members  memberFetcher
	guildID  string
	roleID   string
	adminIDs map[string]struct{}
}

func NewAdminGuard(members memberFetcher, guildID, roleID string, adminUserIDs []string) *AdminGuard {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &AdminGuard{
		members:  members,
		guildID:  guildID,
		roleID:   roleID,
		adminIDs: admins,
	}
}

func (g *AdminGuard) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	if actorID == "" {
		return false, nil
	}
	if _, ok := g.adminIDs[actorID]; ok {
		return true, nil
	}
	if g.guildID == "" || g.roleID == "" {
		return false, nil
	}

	member, err := g.members.GuildMember(g.guildID, actorID, discordgo.WithContext(ctx))
	if isUnknownMember(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch member %s: %w", actorID, err)
	}
	return slices.Contains(member.Roles, g.roleID), nil
}

func isUnknownMember(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && (restErr.Message.Code == discordgo.ErrCodeUnknownMember || restErr.Message.Code == discordgo.ErrCodeUnknownUser) {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
