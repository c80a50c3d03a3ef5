package application

import (
	"context"
	"time"
)

// VerificationServiceImpl runs the user-facing claim flows and their side
// effects. Role grants and log delivery are best-effort.
type VerificationServiceImpl struct {
	claims  ClaimService
	granter RoleGranter
	logs    []VerificationLog
	logger  Logger
	now     func() time.Time
}

func NewVerificationServiceImpl(claims ClaimService, granter RoleGranter, logs []VerificationLog, logger Logger) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		claims:  claims,
		granter: granter,
		logs:    logs,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *VerificationServiceImpl) Verify(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (VerificationResult, error) {
	claim, err := s.claims.SubmitClaim(ctx, requesterID, requesterLabel, rawExternalID)
	if err != nil {
		return VerificationResult{}, err
	}
	result := VerificationResult{Claim: claim}
	if !claim.Bound() {
		return result, nil
	}

	if s.granter != nil {
		grant, err := s.granter.Grant(ctx, requesterID, claim.AllowListed)
		if err != nil {
			s.logger.Warn("role grant for %s failed: %v", requesterID, err)
			result.GrantErr = err
		}
		result.Grant = grant
	}

	s.publish(ctx, claim, SourceVerify, requesterID)
	return result, nil
}

func (s *VerificationServiceImpl) Edit(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (ClaimResult, error) {
	claim, err := s.claims.SubmitClaim(ctx, requesterID, requesterLabel, rawExternalID)
	if err != nil {
		return ClaimResult{}, err
	}
	if claim.Bound() {
		s.publish(ctx, claim, SourceEdit, requesterID)
	}
	return claim, nil
}

func (s *VerificationServiceImpl) AdminEdit(ctx context.Context, adminActorID, targetRequesterID, rawExternalID string) (ClaimResult, error) {
	claim, err := s.claims.ReassignClaim(ctx, adminActorID, targetRequesterID, rawExternalID)
	if err != nil {
		return ClaimResult{}, err
	}
	if claim.Bound() {
		s.publish(ctx, claim, SourceAdminEdit, adminActorID)
	}
	return claim, nil
}

func (s *VerificationServiceImpl) publish(ctx context.Context, claim ClaimResult, source, actorID string) {
	b := claim.Binding
	event := VerificationEvent{
		RequesterID:    b.RequesterID,
		RequesterLabel: b.RequesterLabel,
		ExternalID:     b.ExternalID,
		ExternalLabel:  b.ExternalLabel,
		AllowListed:    claim.AllowListed,
		Source:         source,
		ActorID:        actorID,
		At:             s.now(),
	}
	for _, sink := range s.logs {
		if err := sink.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish verification log for %s: %v", b.RequesterID, err)
		}
	}
}
