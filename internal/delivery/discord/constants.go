package discord

import "time"

const (
	// Component ids
	verifyButtonID = "open_verify_modal"
	verifyModalID  = "verify_modal"
	playFabInputID = "playfab_id"

	// Command names
	cmdSendForm   = "send-form"
	cmdShow       = "show"
	cmdEdit       = "edit"
	cmdAdd        = "add"
	cmdDelete     = "delete"
	cmdList       = "list"
	cmdPyInfo     = "py-info"
	cmdAdminShow  = "admin-show"
	cmdAdminEdit  = "admin-edit"
	cmdRevoke     = "revoke"
	cmdExport     = "export"
	cmdSyncSheet  = "sync_sheet"
	optPlayerID   = "playerid"
	optTargetUser = "user"

	// PlayFab id input bounds
	externalIDMinLength = 16
	externalIDMaxLength = 32

	// Display limits
	maxMessageLength     = 2000
	maxMessageTruncation = 1990
	maxEmbedDescription  = 4000
	exportFileName       = "verified_players.xlsx"

	// Embed colors
	colorBlurple = 0x5865F2 // Form, admin view
	colorGreen   = 0x2ECC71 // Verified
	colorRed     = 0xE74C3C // Rejected
	colorYellow  = 0xF1C40F // Degraded lookup
	colorBlue    = 0x3498DB // Log channel
	colorGray    = 0x95A5A6 // Allow list
	colorInfo    = 0x00A8FF // Player info

	handlerTimeout = 30 * time.Second

	// Grant reasons
	reasonNotInGuild    = "not_in_guild"
	reasonNoRoles       = "no_roles_configured"
	reasonClanRoleError = "clan_role_failed"
)
