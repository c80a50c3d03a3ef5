package application

const (
	// External identifier format: PlayFab ids are 16 to 32 hex characters.
	externalIDMinLength = 16
	externalIDMaxLength = 32

	// Export configuration
	defaultSheetTitle    = "Verified Players"
	defaultClearRange    = "A1:Z5000"
	defaultStartCell     = "A1"
	excelBindingsSheet   = "Bindings"
	excelAllowListSheet  = "AllowList"
	excelTimestampLayout = "2006-01-02 15:04:05"

	// Verification event sources
	SourceVerify    = "verify"
	SourceEdit      = "edit"
	SourceAdminEdit = "admin-edit"
)
