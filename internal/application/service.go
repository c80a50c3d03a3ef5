package application

import (
	"context"
	"time"
	"verifybot/internal/models"
	"verifybot/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// PlayerDirectory resolves external identifiers. LookupPlayer returns nil, nil
// when the account is confirmed absent and an error when it could not confirm.
type PlayerDirectory interface {
	LookupPlayer(ctx context.Context, externalID string) (*models.PlayerInfo, error)
}

type AuthorizationGuard interface {
	IsAdmin(ctx context.Context, actorID string) (bool, error)
}

type RoleGranter interface {
	Grant(ctx context.Context, requesterID string, allowListed bool) (GrantOutcome, error)
}

type VerificationLog interface {
	Publish(ctx context.Context, event VerificationEvent) error
}

type VerificationEvent struct {
	RequesterID    string
	RequesterLabel string
	ExternalID     string
	ExternalLabel  string
	AllowListed    bool
	Source         string
	ActorID        string
	At             time.Time
}

type ClaimService interface {
	SubmitClaim(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (ClaimResult, error)
	ReassignClaim(ctx context.Context, adminActorID, targetRequesterID, rawExternalID string) (ClaimResult, error)
	RevokeClaim(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error)
	GetBinding(ctx context.Context, requesterID string) (*models.IdentityBinding, error)
	InspectBinding(ctx context.Context, adminActorID, targetRequesterID string) (ClaimResult, error)
	InspectPlayer(ctx context.Context, adminActorID, rawExternalID string) (PlayerReport, error)
}

type AllowListService interface {
	Add(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error)
	Remove(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error)
	Contains(ctx context.Context, externalID string) (*models.AllowListEntry, error)
	List(ctx context.Context, adminActorID string) ([]models.AllowListEntry, Outcome, error)
}

type VerificationService interface {
	Verify(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (VerificationResult, error)
	Edit(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (ClaimResult, error)
	AdminEdit(ctx context.Context, adminActorID, targetRequesterID, rawExternalID string) (ClaimResult, error)
}

type ExportService interface {
	ExcelReport(ctx context.Context, adminActorID string) ([]byte, Outcome, error)
	SyncSheet(ctx context.Context, adminActorID string) (string, Outcome, error)
}

type Service struct {
	ClaimService        ClaimService
	AllowListService    AllowListService
	VerificationService VerificationService
	ExportService       ExportService
}

type Deps struct {
	Directory PlayerDirectory
	Guard     AuthorizationGuard
	Granter   RoleGranter
	Logs      []VerificationLog
	Sheets    SheetsService
}

func NewService(repos *repository.Repository, deps Deps, logger Logger) *Service {
	claims := NewClaimServiceImpl(repos.Binding, repos.AllowList, deps.Directory, deps.Guard, logger)
	return &Service{
		ClaimService:        claims,
		AllowListService:    NewAllowListServiceImpl(repos.AllowList, deps.Directory, deps.Guard, logger),
		VerificationService: NewVerificationServiceImpl(claims, deps.Granter, deps.Logs, logger),
		ExportService:       NewExportServiceImpl(repos.Binding, repos.AllowList, deps.Guard, deps.Sheets, logger),
	}
}
