package application

import (
	"context"
	"fmt"
	"verifybot/internal/models"
	"verifybot/internal/repository"
)

// AllowListServiceImpl manages the clan allow list. It shares no uniqueness
// with identity bindings.
type AllowListServiceImpl struct {
	repo      repository.AllowList
	directory PlayerDirectory
	guard     AuthorizationGuard
	logger    Logger
}

func NewAllowListServiceImpl(repo repository.AllowList, directory PlayerDirectory, guard AuthorizationGuard, logger Logger) *AllowListServiceImpl {
	return &AllowListServiceImpl{
		repo:      repo,
		directory: directory,
		guard:     guard,
		logger:    logger,
	}
}

func (s *AllowListServiceImpl) Add(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "allow list add") {
		return ClaimResult{Outcome: OutcomeForbidden}, nil
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return ClaimResult{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}
	result := ClaimResult{ExternalID: externalID}

	info, err := s.directory.LookupPlayer(ctx, externalID)
	if err != nil {
		s.logger.Warn("player lookup for %s failed: %v", externalID, err)
		result.Outcome = OutcomeLookupUnavailable
		return result, nil
	}
	if info == nil {
		result.Outcome = OutcomeUnknownExternalID
		return result, nil
	}

	if err := s.repo.Add(ctx, &models.AllowListEntry{ExternalID: externalID, ExternalLabel: info.Label()}); err != nil {
		return ClaimResult{}, fmt.Errorf("failed to add to allow list: %w", err)
	}

	s.logger.Info("admin %s added %s (%s) to allow list", adminActorID, externalID, info.Label())
	result.Outcome = OutcomeAdded
	result.AllowListed = true
	result.AllowListLabel = info.Label()
	return result, nil
}

func (s *AllowListServiceImpl) Remove(ctx context.Context, adminActorID, rawExternalID string) (ClaimResult, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "allow list remove") {
		return ClaimResult{Outcome: OutcomeForbidden}, nil
	}

	externalID, ok := NormalizeExternalID(rawExternalID)
	if !ok {
		return ClaimResult{Outcome: OutcomeInvalidFormat, ExternalID: externalID}, nil
	}

	removed, err := s.repo.Remove(ctx, externalID)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("failed to remove from allow list: %w", err)
	}
	if !removed {
		return ClaimResult{Outcome: OutcomeNotFound, ExternalID: externalID}, nil
	}

	s.logger.Info("admin %s removed %s from allow list", adminActorID, externalID)
	return ClaimResult{Outcome: OutcomeRemoved, ExternalID: externalID}, nil
}

func (s *AllowListServiceImpl) Contains(ctx context.Context, externalID string) (*models.AllowListEntry, error) {
	return s.repo.Get(ctx, externalID)
}

func (s *AllowListServiceImpl) List(ctx context.Context, adminActorID string) ([]models.AllowListEntry, Outcome, error) {
	if !authorize(ctx, s.guard, s.logger, adminActorID, "allow list list") {
		return nil, OutcomeForbidden, nil
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allow list: %w", err)
	}
	return entries, OutcomeOK, nil
}
