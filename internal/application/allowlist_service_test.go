package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"verifybot/internal/application"
	"verifybot/internal/application/mocks"
	"verifybot/internal/repository"
)

type AllowListServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	directory *mocks.MockPlayerDirectory
	guard     *mocks.MockAuthorizationGuard
	store     *repository.Memory
	service   *application.AllowListServiceImpl
	ctx       context.Context
}

func TestAllowListServiceSuite(t *testing.T) {
	suite.Run(t, new(AllowListServiceSuite))
}

func (s *AllowListServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.directory = mocks.NewMockPlayerDirectory(s.ctrl)
	s.guard = mocks.NewMockAuthorizationGuard(s.ctrl)
	s.store = repository.NewMemory()
	s.service = application.NewAllowListServiceImpl(s.store.AllowListStore(), s.directory, s.guard, nopLogger{})
	s.ctx = context.Background()
}

func (s *AllowListServiceSuite) TestAddRemoveList() {
	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).AnyTimes()
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerA).Return(player(playerA, "Hunter"), nil)
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerB).Return(player(playerB, "Reaper"), nil)

	res, err := s.service.Add(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeAdded, res.Outcome)
	s.Equal("Hunter", res.AllowListLabel)

	res, err = s.service.Add(s.ctx, adminID, " 9f1e2d3c4b5a6978 ")
	s.Require().NoError(err)
	s.Equal(application.OutcomeAdded, res.Outcome)

	entries, outcome, err := s.service.List(s.ctx, adminID)
	s.Require().NoError(err)
	s.Equal(application.OutcomeOK, outcome)
	s.Require().Len(entries, 2)
	s.Equal(playerA, entries[0].ExternalID)
	s.Equal(playerB, entries[1].ExternalID)

	entry, err := s.service.Contains(s.ctx, playerB)
	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("Reaper", entry.ExternalLabel)

	res, err = s.service.Remove(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeRemoved, res.Outcome)

	res, err = s.service.Remove(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeNotFound, res.Outcome)
}

func (s *AllowListServiceSuite) TestAddRejectsUnknownAndUnavailable() {
	s.guard.EXPECT().IsAdmin(gomock.Any(), adminID).Return(true, nil).Times(3)
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerA).Return(nil, nil)
	s.directory.EXPECT().LookupPlayer(gomock.Any(), playerB).Return(nil, errUpstream)

	res, err := s.service.Add(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeUnknownExternalID, res.Outcome)

	res, err = s.service.Add(s.ctx, adminID, playerB)
	s.Require().NoError(err)
	s.Equal(application.OutcomeLookupUnavailable, res.Outcome)

	res, err = s.service.Add(s.ctx, adminID, "short")
	s.Require().NoError(err)
	s.Equal(application.OutcomeInvalidFormat, res.Outcome)

	entries, err := s.store.AllowListStore().List(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *AllowListServiceSuite) TestForbidden() {
	s.guard.EXPECT().IsAdmin(gomock.Any(), "userA").Return(false, nil).Times(3)

	res, err := s.service.Add(s.ctx, "userA", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeForbidden, res.Outcome)

	res, err = s.service.Remove(s.ctx, "userA", playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeForbidden, res.Outcome)

	_, outcome, err := s.service.List(s.ctx, "userA")
	s.Require().NoError(err)
	s.Equal(application.OutcomeForbidden, outcome)
}

func (s *AllowListServiceSuite) TestNilGuardDenies() {
	service := application.NewAllowListServiceImpl(s.store.AllowListStore(), s.directory, nil, nopLogger{})

	res, err := service.Add(s.ctx, adminID, playerA)
	s.Require().NoError(err)
	s.Equal(application.OutcomeForbidden, res.Outcome)
}
