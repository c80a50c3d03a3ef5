package discord

import "github.com/bwmarrin/discordgo"

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func (b *Bot) defaultCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		newSendFormCommand(),
		newShowCommand(),
		newEditCommand(),
		newAddCommand(),
		newDeleteCommand(),
		newListCommand(),
		newPyInfoCommand(),
		newAdminShowCommand(),
		newAdminEditCommand(),
		newRevokeCommand(),
		newExportCommand(),
		newSyncSheetCommand(),
	}
}

func playerIDOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optPlayerID,
		Description: description,
		Required:    true,
		MinLength:   ptr(externalIDMinLength),
		MaxLength:   externalIDMaxLength,
	}
}

func targetUserOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        optTargetUser,
		Description: "Discord user",
		Required:    true,
	}
}

func newSendFormCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdSendForm,
		Description: "Post the player verification form (admins only)",
	}
}

func newShowCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdShow,
		Description: "Show your verified player id",
	}
}

func newEditCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdEdit,
		Description: "Change your player id",
		Options:     []*discordgo.ApplicationCommandOption{playerIDOption("New PlayFab id")},
	}
}

func newAddCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdAdd,
		Description: "Add a player id to the clan list (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{playerIDOption("PlayFab id")},
	}
}

func newDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdDelete,
		Description: "Remove a player id from the clan list (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{playerIDOption("PlayFab id")},
	}
}

func newListCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdList,
		Description: "Show the clan list (admins only)",
	}
}

func newPyInfoCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdPyInfo,
		Description: "Look up a player id (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{playerIDOption("PlayFab id")},
	}
}

func newAdminShowCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdAdminShow,
		Description: "Show a user's verified player id (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{targetUserOption()},
	}
}

func newAdminEditCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdAdminEdit,
		Description: "Change a user's player id (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			targetUserOption(),
			playerIDOption("New PlayFab id"),
		},
	}
}

func newRevokeCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdRevoke,
		Description: "Remove the verification bound to a player id (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{playerIDOption("PlayFab id")},
	}
}

func newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdExport,
		Description: "Export verified players to Excel (admins only)",
	}
}

func newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdSyncSheet,
		Description: "Sync verified players to Google Sheet (admins only)",
	}
}

func ptr[T any](v T) *T {
	return &v
}
