package discord

import (
	"bytes"
	"context"
	"verifybot/internal/application"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleSendForm(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	if !b.isAdmin(ctx, i) {
		b.respondMessage(s, i, outcomeMessage(application.ClaimResult{Outcome: application.OutcomeForbidden}), true)
		return
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{formEmbed(b.formImageURL)},
			Components: []discordgo.MessageComponent{verifyButtonRow()},
		},
	})
}

func (b *Bot) handleOpenVerifyModal(s *discordgo.Session, i *discordgo.Interaction) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: verifyModal(),
	})
	if err != nil {
		b.logger.Warn("failed to open verify modal: %v", err)
		b.respondMessage(s, i, "Could not open the form, please try again.", true)
	}
}

func (b *Bot) handleVerifyModal(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	user := interactionUser(i)
	raw := modalValue(i.ModalSubmitData(), playFabInputID)

	res, err := b.services.VerificationService.Verify(ctx, user.ID, userLabel(user), raw)
	if err != nil {
		b.logger.Error("verify for %s failed: %v", user.ID, err)
		b.editReply(s, i, "An internal error occurred.")
		return
	}

	claim := res.Claim
	if !claim.Bound() {
		b.editReplyEmbed(s, i, "", failEmbed(claim, b.formImageURL))
		return
	}

	embed := userConfirmEmbed(claim.Binding, claim.AllowListed)
	content := "Saved and verified ✅"
	if rolesMissing(res.Grant) {
		content += "\n\n⚠️ Verified, but the bot could not add your roles (you may not have joined the server yet, or permissions are missing). Please contact an admin."
	}

	b.sendDM(ctx, s, user.ID, embed)
	b.editReplyEmbed(s, i, content, embed)
}

func (b *Bot) handleShow(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	user := interactionUser(i)

	binding, err := b.services.ClaimService.GetBinding(ctx, user.ID)
	if err != nil {
		b.logger.Error("show for %s failed: %v", user.ID, err)
		b.respondMessage(s, i, "An internal error occurred.", true)
		return
	}
	if binding == nil {
		b.respondMessage(s, i, "❌ You are not verified yet.", true)
		return
	}

	allowListed := false
	if entry, err := b.services.AllowListService.Contains(ctx, binding.ExternalID); err != nil {
		b.logger.Warn("allow list check for %s failed: %v", binding.ExternalID, err)
	} else {
		allowListed = entry != nil
	}
	b.respondEmbed(s, i, userConfirmEmbed(binding, allowListed), true)
}

func (b *Bot) handleEdit(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	user := interactionUser(i)
	raw := stringOption(i.ApplicationCommandData().Options, optPlayerID)

	res, err := b.services.VerificationService.Edit(ctx, user.ID, userLabel(user), raw)
	if err != nil {
		b.logger.Error("edit for %s failed: %v", user.ID, err)
		b.editReply(s, i, "An internal error occurred.")
		return
	}
	if !res.Bound() {
		b.editReplyEmbed(s, i, "", failEmbed(res, b.formImageURL))
		return
	}
	b.editReply(s, i, "✅ Player id updated.")
}

func (b *Bot) handleAllowListAdd(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	actor := interactionUser(i)
	raw := stringOption(i.ApplicationCommandData().Options, optPlayerID)

	res, err := b.services.AllowListService.Add(ctx, actor.ID, raw)
	if err != nil {
		b.logger.Error("allow list add by %s failed: %v", actor.ID, err)
		b.editReply(s, i, "An internal error occurred.")
		return
	}
	b.editReply(s, i, outcomeMessage(res))
}

func (b *Bot) handleAllowListRemove(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	actor := interactionUser(i)
	raw := stringOption(i.ApplicationCommandData().Options, optPlayerID)

	res, err := b.services.AllowListService.Remove(ctx, actor.ID, raw)
	if err != nil {
		b.logger.Error("allow list remove by %s failed: %v", actor.ID, err)
		b.respondMessage(s, i, "An internal error occurred.", true)
		return
	}
	if res.Outcome == application.OutcomeNotFound {
		b.respondMessage(s, i, "ℹ️ This id is not on the clan list.", true)
		return
	}
	b.respondMessage(s, i, outcomeMessage(res), true)
}

func (b *Bot) handleAllowList(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	actor := interactionUser(i)

	entries, outcome, err := b.services.AllowListService.List(ctx, actor.ID)
	if err != nil {
		b.logger.Error("allow list by %s failed: %v", actor.ID, err)
		b.respondMessage(s, i, "An internal error occurred.", true)
		return
	}
	if outcome != application.OutcomeOK {
		b.respondMessage(s, i, outcomeMessage(application.ClaimResult{Outcome: outcome}), true)
		return
	}
	if len(entries) == 0 {
		b.respondMessage(s, i, "The clan list is empty.", true)
		return
	}
	b.respondEmbed(s, i, allowListEmbed(entries), true)
}

func (b *Bot) handlePlayerInfo(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	actor := interactionUser(i)
	raw := stringOption(i.ApplicationCommandData().Options, optPlayerID)

	report, err := b.services.ClaimService.InspectPlayer(ctx, actor.ID, raw)
	if err != nil {
		b.logger.Error("player info by %s failed: %v", actor.ID, err)
		b.editReply(s, i, "An internal error occurred.")
		return
	}
	if report.Outcome != application.OutcomeOK {
		b.editReply(s, i, outcomeMessage(application.ClaimResult{Outcome: report.Outcome, ExternalID: report.ExternalID}))
		return
	}
	b.editReplyEmbed(s, i, "", playerEmbed(report))
}

func (b *Bot) handleAdminShow(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	actor := interactionUser(i)
	target := userOption(i.ApplicationCommandData(), optTargetUser)
	if target == nil {
		b.respondMessage(s, i, "❌ User not found.", true)
		return
	}

	res, err := b.services.ClaimService.InspectBinding(ctx, actor.ID, target.ID)
	if err != nil {
		b.logger.Error("admin show by %s failed: %v", actor.ID, err)
		b.respondMessage(s, i, "An internal error occurred.", true)
		return
	}
	if !res.Bound() {
		b.respondMessage(s, i, outcomeMessage(res), true)
		return
	}
	b.respondEmbed(s, i, bindingEmbed("Verification of "+valueOrDefault(userLabel(target), target.ID), res.Binding, res.AllowListed, colorBlurple), true)
}

func (b *Bot) handleAdminEdit(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	actor := interactionUser(i)
	data := i.ApplicationCommandData()
	target := userOption(data, optTargetUser)
	if target == nil {
		b.editReply(s, i, "❌ User not found.")
		return
	}

	res, err := b.services.VerificationService.AdminEdit(ctx, actor.ID, target.ID, stringOption(data.Options, optPlayerID))
	if err != nil {
		b.logger.Error("admin edit by %s failed: %v", actor.ID, err)
		b.editReply(s, i, "An internal error occurred.")
		return
	}
	if !res.Bound() {
		b.editReply(s, i, outcomeMessage(res))
		return
	}
	b.editReplyEmbed(s, i, "", bindingEmbed("Updated "+valueOrDefault(userLabel(target), target.ID), res.Binding, res.AllowListed, colorGreen))
}

func (b *Bot) handleRevoke(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	actor := interactionUser(i)
	raw := stringOption(i.ApplicationCommandData().Options, optPlayerID)

	res, err := b.services.ClaimService.RevokeClaim(ctx, actor.ID, raw)
	if err != nil {
		b.logger.Error("revoke by %s failed: %v", actor.ID, err)
		b.respondMessage(s, i, "An internal error occurred.", true)
		return
	}
	b.respondMessage(s, i, outcomeMessage(res), true)
}

func (b *Bot) handleExport(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	actor := interactionUser(i)
	data, outcome, err := b.services.ExportService.ExcelReport(ctx, actor.ID)
	if err != nil {
		b.logger.Error("export error: %v", err)
		b.editReply(s, i, "Export failed: "+err.Error())
		return
	}
	if outcome != application.OutcomeOK {
		b.editReply(s, i, outcomeMessage(application.ClaimResult{Outcome: outcome}))
		return
	}

	content := "Your report is ready!"
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{Name: exportFileName, ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) handleSyncSheet(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i, true)

	actor := interactionUser(i)
	url, outcome, err := b.services.ExportService.SyncSheet(ctx, actor.ID)
	if err != nil {
		b.logger.Error("sheet sync error: %v", err)
		b.editReply(s, i, "Sync failed: "+err.Error())
		return
	}
	if outcome != application.OutcomeOK {
		b.editReply(s, i, outcomeMessage(application.ClaimResult{Outcome: outcome}))
		return
	}
	b.editReply(s, i, "Sheet updated!\nLink: "+url)
}

func (b *Bot) isAdmin(ctx context.Context, i *discordgo.Interaction) bool {
	if b.guard == nil {
		return false
	}
	user := interactionUser(i)
	ok, err := b.guard.IsAdmin(ctx, user.ID)
	if err != nil {
		b.logger.Warn("admin check for %s failed: %v", user.ID, err)
		return false
	}
	return ok
}

func (b *Bot) sendDM(ctx context.Context, s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) {
	ch, err := s.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Debug("cannot open dm with %s: %v", userID, err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(ch.ID, embed, discordgo.WithContext(ctx)); err != nil {
		b.logger.Debug("cannot send dm to %s: %v", userID, err)
	}
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(msg),
			Flags:   flags,
		},
	})
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
}

func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.Interaction, ephemeral bool) {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	}); err != nil {
		b.logger.Warn("failed to defer interaction: %v", err)
	}
}

func (b *Bot) editReply(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	msg = truncate(msg)
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg})
}

func (b *Bot) editReplyEmbed(s *discordgo.Session, i *discordgo.Interaction, msg string, embed *discordgo.MessageEmbed) {
	embeds := []*discordgo.MessageEmbed{embed}
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg, Embeds: &embeds})
}
