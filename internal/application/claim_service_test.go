package application_test

//go:generate mockgen -destination=mocks/mocks.go -package=mocks verifybot/internal/application PlayerDirectory,AuthorizationGuard,RoleGranter,VerificationLog

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"verifybot/internal/application"
	"verifybot/internal/application/mocks"
	"verifybot/internal/models"
	"verifybot/internal/repository"
)

const (
	playerA = "25CDF5286DC38DAD"
	playerB = "9F1E2D3C4B5A6978"
	adminID = "admin-1"
)

var errUpstream = errors.New("playfab: 503 service unavailable")

type ClaimServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	directory *mocks.MockPlayerDirectory
	guard     *mocks.MockAuthorizationGuard
	store     *repository.Memory
	service   *application.ClaimServiceImpl
	ctx       context.Context
}

func TestClaimServiceSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceSuite))
}

func (s *ClaimServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.directory = mocks.NewMockPlayerDirectory(s.ctrl)
	s.guard = mocks.NewMockAuthorizationGuard(s.ctrl)
	s.store = repository.NewMemory()
	s.service = application.NewClaimServiceImpl(s.store, s.store.AllowListStore(), s.directory, s.guard, nopLogger{})
	s.ctx = context.Background()
}

func player(id, name string) *models.PlayerInfo {
	return &models.PlayerInfo{ExternalID: id, DisplayName: name, Username: "user_" + name}
}

func (s *ClaimServiceSuite) expectPlayer(id, name string) {
	s.directory.EXPECT().LookupPlayer(gomock.Any(), id).Return(player(id, name), nil)
}

func (s *ClaimServiceSuite) bind(requesterID, externalID, name string) {
	s.expectPlayer(externalID, name)
	res, err := s.service.SubmitClaim(s.ctx, requesterID, requesterID+"#0001", externalID)
	s.Require().NoError(err)
	s.Require().Equal(application.OutcomeBound, res.Outcome)
}

func (s *ClaimServiceSuite) TestSubmitClaimFirstClaim() {
	s.expectPlayer(playerA, "Hunter")

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)
	s.Require().NotNil(res.Binding)
	s.Equal("userA", res.Binding.RequesterID)
	s.Equal(playerA, res.Binding.ExternalID)
	s.Equal("Hunter", res.Binding.ExternalLabel)
	s.False(res.AllowListed)
	s.Equal(1, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimNormalizesInput() {
	s.expectPlayer(playerA, "Hunter")

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", "  25cdf5286dc38dad ")
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)
	s.Equal(playerA, res.ExternalID)
	s.Equal(playerA, res.Binding.ExternalID)
}

func (s *ClaimServiceSuite) TestSubmitClaimConflictSkipsLookup() {
	s.bind("userA", playerA, "Hunter")

	// No lookup expectation: a conflicting claim must stop before the directory.
	res, err := s.service.SubmitClaim(s.ctx, "userB", "userB#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeConflict, res.Outcome)
	s.Nil(res.Binding)

	holder, err := s.store.FindByExternalID(s.ctx, playerA)
	s.Require().NoError(err)
	s.Equal("userA", holder.RequesterID)
	s.Nil(s.mustFindRequester("userB"))
}

func (s *ClaimServiceSuite) TestSubmitClaimReplacesOwnBinding() {
	s.bind("userA", playerA, "Hunter")
	s.expectPlayer(playerB, "Reaper")

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerB)
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)

	old, err := s.store.FindByExternalID(s.ctx, playerA)
	s.Require().NoError(err)
	s.Nil(old)
	s.Equal(playerB, s.mustFindRequester("userA").ExternalID)
	s.Equal(1, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimIdempotentReclaimRefreshesLabel() {
	s.bind("userA", playerA, "Hunter")
	created := s.mustFindRequester("userA").CreatedAt
	s.expectPlayer(playerA, "Hunter Renamed")

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)

	stored := s.mustFindRequester("userA")
	s.Equal("Hunter Renamed", stored.ExternalLabel)
	s.Equal(created, stored.CreatedAt)
	s.Equal(1, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimInvalidFormatDoesNoIO() {
	for _, raw := range []string{"", "abc", "ZZZZZZZZZZZZZZZZ", "0123456789ABCDEF0123456789ABCDEF0"} {
		res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", raw)
		s.Require().NoError(err)
		s.Equal(application.OutcomeInvalidFormat, res.Outcome, raw)
	}
	s.Equal(0, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimUnknownExternalID() {
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerA).Return(nil, nil)

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeUnknownExternalID, res.Outcome)
	s.Equal(0, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimLookupUnavailable() {
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerA).Return(nil, errUpstream)

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeLookupUnavailable, res.Outcome)
	s.NotEqual(application.OutcomeUnknownExternalID, res.Outcome)
	s.Equal(0, s.store.Size())
}

func (s *ClaimServiceSuite) TestSubmitClaimLookupFailureKeepsExistingBinding() {
	s.bind("userA", playerA, "Hunter")
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerB).Return(nil, errUpstream)

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerB)
	s.Require().NoError(err)
	s.Equal(application.OutcomeLookupUnavailable, res.Outcome)
	s.Equal(playerA, s.mustFindRequester("userA").ExternalID)
}

func (s *ClaimServiceSuite) TestSubmitClaimRequiresRequester() {
	_, err := s.service.SubmitClaim(s.ctx, "", "", playerA)
	s.ErrorIs(err, application.ErrEmptyRequester)
}

func (s *ClaimServiceSuite) TestSubmitClaimReportsAllowList() {
	s.Require().NoError(s.store.AllowListStore().Add(s.ctx, &models.AllowListEntry{ExternalID: playerA, ExternalLabel: "Hunter"}))
	s.expectPlayer(playerA, "Hunter")

	res, err := s.service.SubmitClaim(s.ctx, "userA", "userA#0001", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)
	s.True(res.AllowListed)
	s.Equal("Hunter", res.AllowListLabel)
	s.NoError(res.AllowListErr)
}

func (s *ClaimServiceSuite) TestSubmitClaimConcurrentRace() {
	var arrived sync.WaitGroup
	arrived.Add(2)
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerA).DoAndReturn(func(context.Context, string) (*models.PlayerInfo, error) {
		// Hold both claims past the conflict check before either writes.
		arrived.Done()
		arrived.Wait()
		return player(playerA, "Hunter"), nil
	}).Times(2)

	results := make([]application.ClaimResult, 2)
	var wg sync.WaitGroup
	for i, requester := range []string{"userA", "userB"} {
		wg.Add(1)
		go func(i int, requester string) {
			defer wg.Done()
			res, err := s.service.SubmitClaim(s.ctx, requester, requester+"#0001", playerA)
			s.NoError(err)
			results[i] = res
		}(i, requester)
	}
	wg.Wait()

	outcomes := map[application.Outcome]int{}
	for _, r := range results {
		outcomes[r.Outcome]++
	}
	s.Equal(1, outcomes[application.OutcomeBound])
	s.Equal(1, outcomes[application.OutcomeConflict])
	s.Equal(1, s.store.Size())
}

func (s *ClaimServiceSuite) TestReassignClaim() {
	s.Run("forbidden for non admin", func() {
		s.guard.EXPECT().IsAdmin(gomock.Any(), "userX").Return(false, nil)

		res, err := s.service.ReassignClaim(s.ctx, "userX", "userA", playerA)
		s.Require().NoError(err)
		s.Equal(application.OutcomeForbidden, res.Outcome)
	})

	s.Run("guard error denies", func() {
		s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(false, errors.New("discord down"))

		res, err := s.service.ReassignClaim(s.ctx, adminID, "userA", playerA)
		s.Require().NoError(err)
		s.Equal(application.OutcomeForbidden, res.Outcome)
	})

	s.Run("target without binding is not found", func() {
		s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil)

		res, err := s.service.ReassignClaim(s.ctx, adminID, "userA", playerA)
		s.Require().NoError(err)
		s.Equal(application.OutcomeNotFound, res.Outcome)
		s.Equal(0, s.store.Size())
	})

	s.Run("invalid format checked before store", func() {
		s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil)

		res, err := s.service.ReassignClaim(s.ctx, adminID, "userA", "nope")
		s.Require().NoError(err)
		s.Equal(application.OutcomeInvalidFormat, res.Outcome)
	})
}

func (s *ClaimServiceSuite) TestReassignClaimRebindsAndConflicts() {
	s.bind("userA", playerA, "Hunter")
	s.bind("userB", playerB, "Reaper")
	const playerC = "ABCDEF0123456789"

	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).Times(2)

	res, err := s.service.ReassignClaim(s.ctx, adminID, "userA", playerB)
	s.Require().NoError(err)
	s.Equal(application.OutcomeConflict, res.Outcome)

	s.expectPlayer(playerC, "Ghost")
	res, err = s.service.ReassignClaim(s.ctx, adminID, "userA", playerC)
	s.Require().NoError(err)
	s.Equal(application.OutcomeBound, res.Outcome)
	s.Equal("Ghost", res.Binding.ExternalLabel)

	freed, err := s.store.FindByExternalID(s.ctx, playerA)
	s.Require().NoError(err)
	s.Nil(freed)
	s.Equal(playerB, s.mustFindRequester("userB").ExternalID)
}

// racingBindings reads from the memory store but fails the rebind write, as
// when another writer changes the row between the read and the update.
type racingBindings struct {
	repository.Binding
	updateErr error
}

func (r racingBindings) UpdateExternalID(context.Context, string, string, string) (*models.IdentityBinding, error) {
	return nil, r.updateErr
}

func (s *ClaimServiceSuite) TestReassignClaimWriteRaces() {
	const playerC = "ABCDEF0123456789"
	tests := []struct {
		name      string
		updateErr error
		want      application.Outcome
	}{
		{"external id taken concurrently", repository.ErrExternalIDTaken, application.OutcomeConflict},
		{"target revoked concurrently", repository.ErrNotFound, application.OutcomeNotFound},
	}

	s.bind("userA", playerA, "Hunter")
	for _, tt := range tests {
		s.Run(tt.name, func() {
			service := application.NewClaimServiceImpl(
				racingBindings{Binding: s.store, updateErr: tt.updateErr},
				s.store.AllowListStore(), s.directory, s.guard, nopLogger{},
			)
			s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil)
			s.expectPlayer(playerC, "Ghost")

			res, err := service.ReassignClaim(s.ctx, adminID, "userA", playerC)
			s.Require().NoError(err)
			s.Equal(tt.want, res.Outcome)
			s.Nil(res.Binding)
			s.Equal(playerA, s.mustFindRequester("userA").ExternalID)
		})
	}
}

func (s *ClaimServiceSuite) TestRevokeClaim() {
	s.bind("userA", playerA, "Hunter")
	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).Times(2)

	res, err := s.service.RevokeClaim(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeRevoked, res.Outcome)
	s.Equal(0, s.store.Size())

	res, err = s.service.RevokeClaim(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeNotFound, res.Outcome)

	// The freed id can be claimed by someone else.
	s.bind("userB", playerA, "Hunter")
}

func (s *ClaimServiceSuite) TestRevokeClaimForbidden() {
	s.bind("userA", playerA, "Hunter")
	s.guard.EXPECT().IsAdmin(gomock.Any(), "userA").Return(false, nil)

	res, err := s.service.RevokeClaim(s.ctx, "userA", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeForbidden, res.Outcome)
	s.Equal(1, s.store.Size())
}

func (s *ClaimServiceSuite) TestInspect() {
	s.bind("userA", playerA, "Hunter")
	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).AnyTimes()

	s.Run("binding of target", func() {
		res, err := s.service.InspectBinding(s.ctx, adminID, "userA")
		s.Require().NoError(err)
		s.Equal(application.OutcomeBound, res.Outcome)
		s.Equal(playerA, res.ExternalID)
	})

	s.Run("missing binding", func() {
		res, err := s.service.InspectBinding(s.ctx, adminID, "userZ")
		s.Require().NoError(err)
		s.Equal(application.OutcomeNotFound, res.Outcome)
	})

	s.Run("player with holder", func() {
		s.expectPlayer(playerA, "Hunter")

		report, err := s.service.InspectPlayer(s.ctx, adminID, playerA)
		s.Require().NoError(err)
		s.Equal(application.OutcomeOK, report.Outcome)
		s.Require().NotNil(report.Holder)
		s.Equal("userA", report.Holder.RequesterID)
		s.False(report.AllowListed)
	})

	s.Run("player lookup unavailable", func() {
		s.directory.EXPECT().LookupPlayer(gomock.Any(), playerB).Return(nil, errUpstream)

		report, err := s.service.InspectPlayer(s.ctx, adminID, playerB)
		s.Require().NoError(err)
		s.Equal(application.OutcomeLookupUnavailable, report.Outcome)
	})

	s.Run("own binding needs no guard", func() {
		b, err := s.service.GetBinding(s.ctx, "userA")
		s.Require().NoError(err)
		s.Require().NotNil(b)
		s.Equal(playerA, b.ExternalID)
	})
}

func (s *ClaimServiceSuite) mustFindRequester(requesterID string) *models.IdentityBinding {
	b, err := s.store.FindByRequesterID(s.ctx, requesterID)
	s.Require().NoError(err)
	return b
}

func (s *ClaimServiceSuite) TestInvariantsHoldOverRandomSequences() {
	requesters := []string{"userA", "userB", "userC", "userD"}
	ids := []string{playerA, playerB, "ABCDEF0123456789", "0000000000000000FFFF"}
	confirmed := map[string]bool{}
	rng := rand.New(rand.NewSource(42))

	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).AnyTimes()
	s.directory.EXPECT().LookupPlayer(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*models.PlayerInfo, error) {
		switch rng.Intn(3) {
		case 0:
			return nil, nil
		case 1:
			return nil, errUpstream
		default:
			confirmed[id] = true
			return player(id, "name-"+id), nil
		}
	}).AnyTimes()

	for step := 0; step < 300; step++ {
		requester := requesters[rng.Intn(len(requesters))]
		id := ids[rng.Intn(len(ids))]

		var err error
		switch rng.Intn(4) {
		case 0, 1:
			_, err = s.service.SubmitClaim(s.ctx, requester, requester, id)
		case 2:
			_, err = s.service.ReassignClaim(s.ctx, adminID, requester, id)
		default:
			_, err = s.service.RevokeClaim(s.ctx, adminID, id)
		}
		s.Require().NoError(err)

		bindings, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		seenRequesters := map[string]bool{}
		seenExternal := map[string]bool{}
		for _, b := range bindings {
			s.Require().False(seenRequesters[b.RequesterID], "duplicate requester %s at step %d", b.RequesterID, step)
			s.Require().False(seenExternal[b.ExternalID], "duplicate external id %s at step %d", b.ExternalID, step)
			s.Require().True(confirmed[b.ExternalID], "unconfirmed external id %s at step %d", b.ExternalID, step)
			seenRequesters[b.RequesterID] = true
			seenExternal[b.ExternalID] = true
		}
	}
}
