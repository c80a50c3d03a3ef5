package discord

import (
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// fakeGuild is an in-memory stand-in for the discord REST endpoints the
// guard, granter and log channel use.
type fakeGuild struct {
	mu        sync.Mutex
	members   map[string]*discordgo.Member
	memberErr error
	roleErrs  map[string]error
	added     []string
	embeds    []*discordgo.MessageEmbed
	sendErr   error
}

func newFakeGuild() *fakeGuild {
	return &fakeGuild{members: map[string]*discordgo.Member{}, roleErrs: map[string]error{}}
}

func (f *fakeGuild) GuildMember(_, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	m, ok := f.members[userID]
	if !ok {
		return nil, unknownMemberErr()
	}
	return m, nil
}

func (f *fakeGuild) GuildMemberRoleAdd(_, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roleErrs[roleID]; err != nil {
		return err
	}
	f.added = append(f.added, userID+":"+roleID)
	return nil
}

func (f *fakeGuild) ChannelMessageSendEmbed(_ string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{}, nil
}

func unknownMemberErr() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember, Message: "Unknown Member"},
	}
}
