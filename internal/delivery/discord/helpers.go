package discord

import (
	"fmt"
	"strings"
	"time"
	"verifybot/internal/application"
	"verifybot/internal/models"

	"github.com/bwmarrin/discordgo"
)

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func userLabel(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// rolesMissing reports whether the user should be told their roles were not added.
// Deployments without configured roles have nothing to add.
func rolesMissing(g application.GrantOutcome) bool {
	return !g.BaseRolesGranted && g.Reason != reasonNoRoles
}

func outcomeMessage(res application.ClaimResult) string {
	switch res.Outcome {
	case application.OutcomeBound:
		return fmt.Sprintf("✅ PlayFab id **%s** saved.", res.ExternalID)
	case application.OutcomeInvalidFormat:
		return "❌ Invalid PlayFab id format (expected 16 to 32 hex characters)."
	case application.OutcomeUnknownExternalID:
		return fmt.Sprintf("❌ We could not find **%s**. Please check your player id and try again.", res.ExternalID)
	case application.OutcomeLookupUnavailable:
		return "⚠️ Verification is temporarily degraded. Please try again in a few minutes."
	case application.OutcomeConflict:
		return "❌ This PlayFab id is already used by another user."
	case application.OutcomeNotFound:
		return "❌ No verification found."
	case application.OutcomeForbidden:
		return "❌ You need the admin role in the primary server."
	case application.OutcomeRevoked:
		return fmt.Sprintf("✅ Verification for **%s** removed.", res.ExternalID)
	case application.OutcomeAdded:
		return fmt.Sprintf("✅ Added **%s** to the clan list.", res.ExternalID)
	case application.OutcomeRemoved:
		return fmt.Sprintf("✅ Removed **%s** from the clan list.", res.ExternalID)
	default:
		return "Something went wrong. Please try again."
	}
}

func clanStatusText(allowListed bool) string {
	if allowListed {
		return "Clan member ✅"
	}
	return "Not on the clan list"
}

func formEmbed(imageURL string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "Verify that you are a player by entering your player id",
		Description: "Press **Your ID** and enter your **Player id**, for example `25CDF5286DC38DAD`.",
		Color:       colorBlurple,
	}
	if imageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}
	return e
}

func verifyButtonRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Your ID",
				Style:    discordgo.PrimaryButton,
				CustomID: verifyButtonID,
			},
		},
	}
}

func verifyModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: verifyModalID,
		Title:    "Enter your player id",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    playFabInputID,
						Label:       "Example: 25CDF5286DC38DAD",
						Style:       discordgo.TextInputShort,
						Placeholder: "25CDF5286DC38DAD",
						MinLength:   externalIDMinLength,
						MaxLength:   externalIDMaxLength,
					},
				},
			},
		},
	}
}

// modalValue returns the text input with customID from a submitted modal.
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		var row []discordgo.MessageComponent
		switch r := c.(type) {
		case *discordgo.ActionsRow:
			row = r.Components
		case discordgo.ActionsRow:
			row = r.Components
		}
		for _, inner := range row {
			switch in := inner.(type) {
			case *discordgo.TextInput:
				if in.CustomID == customID {
					return in.Value
				}
			case discordgo.TextInput:
				if in.CustomID == customID {
					return in.Value
				}
			}
		}
	}
	return ""
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := optionMap(options)[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

// userOption resolves a user option from the interaction's resolved data
// without a REST call.
func userOption(data discordgo.ApplicationCommandInteractionData, name string) *discordgo.User {
	opt, ok := optionMap(data.Options)[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil
	}
	id, _ := opt.Value.(string)
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

func userConfirmEmbed(b *models.IdentityBinding, allowListed bool) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Verified",
		Description: "You are now verified.",
		Color:       colorGreen,
		Timestamp:   b.UpdatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player id", Value: b.ExternalID, Inline: false},
			{Name: "Clan status", Value: clanStatusText(allowListed), Inline: true},
			{Name: "Discord id", Value: b.RequesterID, Inline: true},
			{Name: "Discord name", Value: valueOrDefault(b.RequesterLabel, "—"), Inline: true},
		},
	}
}

func failEmbed(res application.ClaimResult, imageURL string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "Verification failed",
		Description: outcomeMessage(res),
		Color:       colorRed,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if res.Outcome == application.OutcomeLookupUnavailable {
		e.Title = "Verification temporarily unavailable"
		e.Color = colorYellow
	}
	if imageURL != "" && res.Outcome == application.OutcomeUnknownExternalID {
		e.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}
	return e
}

func logEmbed(e application.VerificationEvent) *discordgo.MessageEmbed {
	title := "LOG: player verified"
	switch e.Source {
	case application.SourceEdit:
		title = "LOG: player id updated"
	case application.SourceAdminEdit:
		title = "LOG: player id reassigned"
	}

	clan := "no"
	if e.AllowListed {
		clan = "yes"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Player id", Value: e.ExternalID, Inline: true},
		{Name: "Player name", Value: valueOrDefault(e.ExternalLabel, "—"), Inline: true},
		{Name: "Clan", Value: clan, Inline: true},
		{Name: "Discord", Value: fmt.Sprintf("%s (<@%s>)", valueOrDefault(e.RequesterLabel, "—"), e.RequesterID), Inline: false},
	}
	if e.Source == application.SourceAdminEdit && e.ActorID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Admin", Value: fmt.Sprintf("<@%s>", e.ActorID), Inline: false})
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     colorBlue,
		Fields:    fields,
		Timestamp: e.At.Format(time.RFC3339),
	}
}

func bindingEmbed(title string, b *models.IdentityBinding, allowListed bool, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player id", Value: b.ExternalID, Inline: true},
			{Name: "Player name", Value: valueOrDefault(b.ExternalLabel, "—"), Inline: true},
			{Name: "Clan", Value: clanStatusText(allowListed), Inline: true},
			{Name: "Discord", Value: fmt.Sprintf("%s (<@%s>)", valueOrDefault(b.RequesterLabel, "—"), b.RequesterID), Inline: false},
			{Name: "Verified at", Value: b.CreatedAt.Format(time.DateTime), Inline: true},
			{Name: "Updated at", Value: b.UpdatedAt.Format(time.DateTime), Inline: true},
		},
	}
}

func playerEmbed(report application.PlayerReport) *discordgo.MessageEmbed {
	holder := "Not verified by anyone"
	if report.Holder != nil {
		holder = fmt.Sprintf("%s (<@%s>)", valueOrDefault(report.Holder.RequesterLabel, "—"), report.Holder.RequesterID)
	}
	return &discordgo.MessageEmbed{
		Title: "Player info",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player id", Value: report.ExternalID, Inline: true},
			{Name: "Display name", Value: valueOrDefault(report.Player.DisplayName, "—"), Inline: true},
			{Name: "Username", Value: valueOrDefault(report.Player.Username, "—"), Inline: true},
			{Name: "Clan", Value: clanStatusText(report.AllowListed), Inline: true},
			{Name: "Verified by", Value: holder, Inline: false},
		},
	}
}

func allowListEmbed(entries []models.AllowListEntry) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx, e := range entries {
		line := fmt.Sprintf("`%d.` %s — %s\n", idx+1, e.ExternalID, valueOrDefault(e.ExternalLabel, "—"))
		if sb.Len()+len(line) > maxEmbedDescription {
			sb.WriteString(fmt.Sprintf("… and %d more", len(entries)-idx))
			break
		}
		sb.WriteString(line)
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Clan list (%d)", len(entries)),
		Description: sb.String(),
		Color:       colorGray,
	}
}

func truncate(msg string) string {
	if len(msg) <= maxMessageLength {
		return msg
	}
	return msg[:maxMessageTruncation] + "..."
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
