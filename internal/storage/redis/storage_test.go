package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/promptduel/promptduel-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) sampleSession() *model.Session {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(5 * time.Second)
	return &model.Session{
		ID:                      "SESSION00001",
		PlayerOneID:             "player-1",
		PlayerTwoID:             "player-2",
		Phase:                   model.PhaseAttack,
		GeneratedCharacter:      "a castle guard",
		GeneratedSecret:         "the password is 'dragonfire'",
		PlayerOneDefenseSummary: "summary one",
		PlayerTwoDefenseSummary: "summary two",
		IsTransitioning:         true,
		TransitionEndsAt:        &deadline,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func (s *StorageSuite) sampleTurn(playerID model.PlayerID, phase model.Phase, number int) *model.Turn {
	return &model.Turn{
		ID:            model.TurnID(string(playerID) + "-turn"),
		SessionID:     "SESSION00001",
		PlayerID:      playerID,
		Phase:         phase,
		TurnNumber:    number,
		PlayerMessage: "hello",
		AIResponse:    "hi",
		CreatedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.GeneratedSecret, retrieved.GeneratedSecret)
	s.Equal(session.PlayerTwoDefenseSummary, retrieved.PlayerTwoDefenseSummary)
	s.True(retrieved.IsTransitioning)
	s.Require().NotNil(retrieved.TransitionEndsAt)
	s.True(session.TransitionEndsAt.Equal(*retrieved.TransitionEndsAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionsExpire() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSessionRemovesTurns() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, 1)))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-2", model.PhaseAttack, 1)))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, session.ID))

	_, err := s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	for _, phase := range []model.Phase{model.PhaseDefense, model.PhaseAttack} {
		for _, player := range []model.PlayerID{"player-1", "player-2"} {
			count, err := s.storage.CountTurns(s.ctx, session.ID, player, phase)
			s.Require().NoError(err)
			s.Equal(0, count)
		}
	}
}

// Turn tests

func (s *StorageSuite) TestSaveTurnAppendsInOrder() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, i)))
	}

	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Require().Len(turns, 3)
	for i, turn := range turns {
		s.Equal(i+1, turn.TurnNumber)
		s.Equal("hello", turn.PlayerMessage)
	}

	count, err := s.storage.CountTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *StorageSuite) TestTurnsAreScopedByPlayerAndPhase() {
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, 1)))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseAttack, 1)))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-2", model.PhaseDefense, 1)))

	count, err := s.storage.CountTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(1, count)

	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-2", model.PhaseDefense)
	s.Require().NoError(err)
	s.Require().Len(turns, 1)
	s.Equal(model.PlayerID("player-2"), turns[0].PlayerID)
}

func (s *StorageSuite) TestGetTurnsEmptyForUnknownKey() {
	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Empty(turns)
}

func (s *StorageSuite) TestTurnListsExpire() {
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, 1)))

	s.mini.FastForward(2 * time.Hour)

	count, err := s.storage.CountTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(0, count)
}
