package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/promptduel/promptduel-go/internal/ai"
	"github.com/promptduel/promptduel-go/internal/dependencies/clock"
	"github.com/promptduel/promptduel-go/internal/dependencies/mocks"
	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/services/scenario"
	"github.com/promptduel/promptduel-go/internal/storage/memory"
	"github.com/promptduel/promptduel-go/internal/testutil"
)

type ReadStateSuite struct {
	suite.Suite
	storage    *memory.Storage
	provider   *mocks.MockProvider
	publisher  *mocks.RecordingPublisher
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestReadStateSuite(t *testing.T) {
	suite.Run(t, new(ReadStateSuite))
}

func (s *ReadStateSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.provider = mocks.NewMockProvider()
	s.publisher = mocks.NewRecordingPublisher()
	s.random = mocks.NewMockRandom()

	cfg := Config{
		TurnLimit:        3,
		MaxMessageLength: 100,
		TransitionTicks:  5,
		TickInterval:     time.Second,
	}
	s.controller = NewController(
		s.storage,
		ai.New(s.provider, logger),
		scenario.New(s.random, logger),
		s.publisher,
		clock.New(),
		s.random,
		cfg,
		logger,
	)
	s.ctx = context.Background()
}

func (s *ReadStateSuite) createSession() *model.Session {
	s.random.QueueString("SESSION00001")
	session, err := s.controller.Create(s.ctx, playerOne, playerTwo)
	s.Require().NoError(err)
	return session
}

func (s *ReadStateSuite) TestReadStateUnknownSession() {
	_, err := s.controller.ReadState(s.ctx, "NOPE", playerOne)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ReadStateSuite) TestReadStateSpectatorSeesNothing() {
	session := s.createSession()

	snap, err := s.controller.ReadState(s.ctx, session.ID, "stranger")
	s.Require().NoError(err)
	s.True(snap.Spectating)
	s.Empty(snap.Phase)
	s.Empty(snap.Character)
	s.Empty(snap.Turns)
	s.Empty(snap.WinnerID)
}

func (s *ReadStateSuite) TestReadStateFreshSession() {
	session := s.createSession()

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.False(snap.Spectating)
	s.Equal(model.PhaseDefense, snap.Phase)
	s.Equal(session.GeneratedCharacter, snap.Character)
	s.Equal(0, snap.MyTurnCount)
	s.Equal(0, snap.OpponentTurnCount)
	s.Empty(snap.Turns)
	s.False(snap.IsComplete)
	s.False(snap.IsTransitioning)
	s.Empty(snap.OpponentDefenseSummary)
}

func (s *ReadStateSuite) TestReadStateReflectsOwnAndOpponentCounts() {
	session := s.createSession()
	s.provider.QueueReply("r1", "r2")
	_, err := s.controller.SubmitTurn(s.ctx, session.ID, playerOne, "one")
	s.Require().NoError(err)
	_, err = s.controller.SubmitTurn(s.ctx, session.ID, playerOne, "two")
	s.Require().NoError(err)
	_, err = s.controller.SubmitTurn(s.ctx, session.ID, playerTwo, "one")
	s.Require().NoError(err)

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.Equal(2, snap.MyTurnCount)
	s.Equal(1, snap.OpponentTurnCount)
	s.Require().Len(snap.Turns, 2)
	s.Equal("one", snap.Turns[0].PlayerMessage)
	s.Equal("r1", snap.Turns[0].AIResponse)
	s.Equal("two", snap.Turns[1].PlayerMessage)

	// The caller never sees the opponent's turns
	for _, turn := range snap.Turns {
		s.Equal(playerOne, turn.PlayerID)
	}
}

func (s *ReadStateSuite) TestReadStateShowsOpponentSummaryDuringAttack() {
	session := s.createSession()
	session.Phase = model.PhaseAttack
	session.PlayerOneDefenseSummary = "summary one"
	session.PlayerTwoDefenseSummary = "summary two"
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.Equal("summary two", snap.OpponentDefenseSummary)

	snap, err = s.controller.ReadState(s.ctx, session.ID, playerTwo)
	s.Require().NoError(err)
	s.Equal("summary one", snap.OpponentDefenseSummary)
}

func (s *ReadStateSuite) TestReadStateHidesSummariesDuringDefense() {
	session := s.createSession()
	session.PlayerTwoDefenseSummary = "summary two"
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.Empty(snap.OpponentDefenseSummary)
}

func (s *ReadStateSuite) TestReadStateReportsRemainingCountdown() {
	session := s.createSession()
	deadline := time.Now().Add(2500 * time.Millisecond)
	session.IsTransitioning = true
	session.TransitionEndsAt = &deadline
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.True(snap.IsTransitioning)
	s.Equal(3, snap.TransitionRemaining)
}

func (s *ReadStateSuite) TestReadStateFinalizesOverdueTransition() {
	session := s.createSession()
	past := time.Now().Add(-time.Minute)
	session.IsTransitioning = true
	session.TransitionEndsAt = &past
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.Equal(model.PhaseAttack, snap.Phase)
	s.False(snap.IsTransitioning)
	s.Equal(0, snap.TransitionRemaining)

	stored, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhaseAttack, stored.Phase)
	s.Nil(stored.TransitionEndsAt)

	ended := s.publisher.EventsOfType(model.EventTransitionEnded)
	s.Require().Len(ended, 1)
}

func (s *ReadStateSuite) TestReadStateCompletedSessionShowsAttackTurns() {
	session := s.createSession()
	session.Phase = model.PhaseAttack
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.provider.QueueReply("attack r1")
	_, err := s.controller.SubmitTurn(s.ctx, session.ID, playerOne, "guess")
	s.Require().NoError(err)
	s.Require().NoError(s.controller.Forfeit(s.ctx, session.ID, playerTwo))

	snap, err := s.controller.ReadState(s.ctx, session.ID, playerOne)
	s.Require().NoError(err)
	s.True(snap.IsComplete)
	s.Equal(playerOne, snap.WinnerID)
	s.Equal(model.EndReasonForfeit, snap.EndReason)
	s.Equal(1, snap.MyTurnCount)
	s.Require().Len(snap.Turns, 1)
	s.Equal("guess", snap.Turns[0].PlayerMessage)
}
