package discord

import (
	"context"
	"fmt"
	"verifybot/internal/application"
	"verifybot/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	guard    application.AuthorizationGuard
	logger   application.Logger

	commands     []*discordgo.ApplicationCommand
	commandGuild string
	formImageURL string
	removeFns    []func()
}

func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

func NewBot(session *discordgo.Session, cfg *config.Config, services *application.Service, guard application.AuthorizationGuard, logger application.Logger) *Bot {
	b := &Bot{
		session:      session,
		services:     services,
		guard:        guard,
		logger:       logger,
		formImageURL: cfg.Discord.FormImageURL,
	}
	if cfg.Discord.CommandScope != config.CommandScopeGlobal {
		b.commandGuild = cfg.PrimaryGuildID
	}
	b.addCommands(b.defaultCommands()...)
	return b
}

func (b *Bot) Name() string {
	return "discord bot"
}

func (b *Bot) Init() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onInteraction),
	)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	scope := "global"
	if b.commandGuild != "" {
		scope = "guild " + b.commandGuild
	}
	b.logger.Info("discord bot started, registering %d slash commands (%s)", len(b.commands), scope)

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.commandGuild, b.commands, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Error("failed to register commands: %v", err)
	} else {
		b.logger.Info("%d slash commands registered successfully", len(registered))
	}

	<-ctx.Done()
}

func (b *Bot) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in as %s", r.User.Username)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("interaction handler panic: %v", r)
			b.respondMessage(s, i.Interaction, "An internal error occurred.", true)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(ctx, s, i.Interaction)
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == verifyButtonID {
			b.handleOpenVerifyModal(s, i.Interaction)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == verifyModalID {
			b.handleVerifyModal(ctx, s, i.Interaction)
		}
	}
}

func (b *Bot) onCommand(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	switch i.ApplicationCommandData().Name {
	case cmdSendForm:
		b.handleSendForm(ctx, s, i)
	case cmdShow:
		b.handleShow(ctx, s, i)
	case cmdEdit:
		b.handleEdit(ctx, s, i)
	case cmdAdd:
		b.handleAllowListAdd(ctx, s, i)
	case cmdDelete:
		b.handleAllowListRemove(ctx, s, i)
	case cmdList:
		b.handleAllowList(ctx, s, i)
	case cmdPyInfo:
		b.handlePlayerInfo(ctx, s, i)
	case cmdAdminShow:
		b.handleAdminShow(ctx, s, i)
	case cmdAdminEdit:
		b.handleAdminEdit(ctx, s, i)
	case cmdRevoke:
		b.handleRevoke(ctx, s, i)
	case cmdExport:
		b.handleExport(ctx, s, i)
	case cmdSyncSheet:
		b.handleSyncSheet(ctx, s, i)
	}
}
