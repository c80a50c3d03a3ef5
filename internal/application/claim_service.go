package application

import (
	"context"
	"errors"
	"fmt"
	"verifybot/internal/models"
	"verifybot/internal/repository"
)

var ErrEmptyRequester = errors.New("requester id is required")

// ClaimServiceImpl is the only writer of identity bindings. Uniqueness of
// requester and external ids is enforced by the store's conditional write;
// the pre-write conflict check only avoids a pointless lookup.
type ClaimServiceImpl struct {
	bindings  repository.Binding
	allowList repository.AllowList
	directory PlayerDirectory
	guard     AuthorizationGuard
	logger    Logger
}

func NewClaimServiceImpl(bindings repository.Binding, allowList repository.AllowList, directory PlayerDirectory, guard AuthorizationGuard, logger Logger) *ClaimServiceImpl {
	return &ClaimServiceImpl{
		bindings:  bindings,
		allowList: allowList,
		directory: directory,
		guard:     guard,
		logger:    logger,
	}
}

func (s *ClaimServiceImpl) SubmitClaim(ctx context.Context, requesterID, requesterLabel, rawExternalID string) (ClaimResult, error) {
	if requesterID == "" {
		return ClaimResult{}, ErrEmptyRequester
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return ClaimResult{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}
	result := ClaimResult{ExternalID: externalID}

	holder, err := s.bindings.FindByExternalID(ctx, externalID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to check existing claim: %w", err)
	}
	if holder != nil && holder.RequesterID != requesterID {
		s.logger.Info("claim of %s by %s rejected: held by %s", externalID, requesterID, holder.RequesterID)
		result.Outcome = OutcomeConflict
		return result, nil
	}

	label, outcome := s.resolve(ctx, externalID)
	if outcome != 0 {
		result.Outcome = outcome
		return result, nil
	}

	binding, err := s.bindings.Upsert(ctx, &models.IdentityBinding{
		RequesterID:    requesterID,
		RequesterLabel: requesterLabel,
		ExternalID:     externalID,
		ExternalLabel:  label,
	})
	if errors.Is(err, repository.ErrExternalIDTaken) {
		s.logger.Info("claim of %s by %s lost the write race", externalID, requesterID)
		result.Outcome = OutcomeConflict
		return result, nil
	}
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to save claim: %w", err)
	}

	s.logger.Info("bound %s to %s (%s)", externalID, requesterID, label)
	result.Outcome = OutcomeBound
	result.Binding = binding
	s.checkAllowList(ctx, &result)
	return result, nil
}

// ReassignClaim rebinds an existing requester on an admin's behalf. Creating
// a binding for a requester that has none is not supported on this path.
func (s *ClaimServiceImpl) ReassignClaim(ctx context.Context, adminActorID, targetRequesterID, rawExternalID string) (ClaimResult, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "reassign") {
		return ClaimResult{Outcome: OutcomeForbidden}, nil
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return ClaimResult{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}
	result := ClaimResult{ExternalID: externalID}

	target, err := s.bindings.FindByRequesterID(ctx, targetRequesterID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to get target binding: %w", err)
	}
	if target == nil {
		result.Outcome = OutcomeNotFound
		return result, nil
	}

	holder, err := s.bindings.FindByExternalID(ctx, externalID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to check existing claim: %w", err)
	}
	if holder != nil && holder.RequesterID != targetRequesterID {
		result.Outcome = OutcomeConflict
		return result, nil
	}

	label, outcome := s.resolve(ctx, externalID)
	if outcome != 0 {
		result.Outcome = outcome
		return result, nil
	}

	binding, err := s.bindings.UpdateExternalID(ctx, targetRequesterID, externalID, label)
	switch {
	case errors.Is(err, repository.ErrExternalIDTaken):
		result.Outcome = OutcomeConflict
		return result, nil
	case errors.Is(err, repository.ErrNotFound):
		result.Outcome = OutcomeNotFound
		return result, nil
	case err != nil:
		return ClaimResult{}, fmt.Errorf("failed to reassign claim: %w", err)
	}

	s.logger.Info("admin %s reassigned %s to %s (was %s)", adminActorID, externalID, targetRequesterID, target.ExternalID)
	result.Outcome = OutcomeBound
	result.Binding = binding
	s.checkAllowList(ctx, &result)
	return result, nil
}

func (s *ClaimServiceImpl) RevokeClaim(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "revoke") {
		return ClaimResult{Outcome: OutcomeForbidden}, nil
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return ClaimResult{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}

	deleted, err := s.bindings.DeleteByExternalID(ctx, externalID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to revoke claim: %w", err)
	}
	if !deleted {
		return ClaimResult{Outcome: OutcomeNotFound, ExternalID: externalID}, nil
	}

	s.logger.Info("admin %s revoked binding of %s", adminActorID, externalID)
	return ClaimResult{Outcome: OutcomeRevoked, ExternalID: externalID}, nil
}

func (s *ClaimServiceImpl) GetBinding(ctx context.Context, requesterID string) (*models.IdentityBinding, error) {
	return s.bindings.FindByRequesterID(ctx, requesterID)
}

func (s *ClaimServiceImpl) InspectBinding(ctx context.Context, adminActorID, targetRequesterID string) (ClaimResult, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "inspect binding") {
		return ClaimResult{Outcome: OutcomeForbidden}, nil
	}

	binding, err := s.bindings.FindByRequesterID(ctx, targetRequesterID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to get binding: %w", err)
	}
	if binding == nil {
		return ClaimResult{Outcome: OutcomeNotFound}, nil
	}

	result := ClaimResult{Outcome: OutcomeBound, ExternalID: binding.ExternalID, Binding: binding}
	s.checkAllowList(ctx, &result)
	return result, nil
}

func (s *ClaimServiceImpl) InspectPlayer(ctx context.Context, adminActorID, rawExternalID string) (PlayerReport, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "inspect player") {
		return PlayerReport{Outcome: OutcomeForbidden}, nil
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return PlayerReport{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}
	report := PlayerReport{ExternalID: externalID}

	info, err := s.directory.LookupPlayer(ctx, externalID)
	if err != nil {
		s.logger.Warn("player lookup for %s failed: %v", externalID, err)
		report.Outcome = OutcomeLookupUnavailable
		return report, nil
	}
	if info == nil {
		report.Outcome = OutcomeUnknownExternalID
		return report, nil
	}

	holder, err := s.bindings.FindByExternalID(ctx, externalID)
	if err != nil {
		return PlayerReport{}, fmt.Errorf("failed to get holder: %w", err)
	}
	entry, err := s.allowList.Get(ctx, externalID)
	if err != nil {
		s.logger.Warn("allow list check for %s failed: %v", externalID, err)
	}

	report.Outcome = OutcomeOK
	report.Player = info
	report.Holder = holder
	report.AllowListed = entry != nil
	return report, nil
}

// resolve confirms externalID with the directory. A non-zero outcome means the
// claim must stop without touching the store.
func (s *ClaimServiceImpl) resolve(ctx context.Context, externalID string) (string, Outcome) {
	info, err := s.directory.LookupPlayer(ctx, externalID)
	if err != nil {
		s.logger.Warn("player lookup for %s failed: %v", externalID, err)
		return "", OutcomeLookupUnavailable
	}
	if info == nil {
		return "", OutcomeUnknownExternalID
	}
	return info.Label(), 0
}

func (s *ClaimServiceImpl) checkAllowList(ctx context.Context, result *ClaimResult) {
	if s.allowList == nil {
		return
	}
	entry, err := s.allowList.Get(ctx, result.ExternalID)
	if err != nil {
		s.logger.Warn("allow list check for %s failed: %v", result.ExternalID, err)
		result.AllowListErr = err
		return
	}
	if entry != nil {
		result.AllowListed = true
		result.AllowListLabel = entry.ExternalLabel
	}
}
