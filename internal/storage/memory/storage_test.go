package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/promptduel/promptduel-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) sampleSession() *model.Session {
	return &model.Session{
		ID:                 "SESSION00001",
		PlayerOneID:        "player-1",
		PlayerTwoID:        "player-2",
		Phase:              model.PhaseDefense,
		GeneratedCharacter: "a castle guard",
		GeneratedSecret:    "the password is 'dragonfire'",
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
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
		CreatedAt:     time.Now(),
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
	s.Equal(model.PhaseDefense, retrieved.Phase)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveSessionOverwrites() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	session.Phase = model.PhaseAttack
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhaseAttack, retrieved.Phase)
}

func (s *StorageSuite) TestGetSessionReturnsACopy() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	first, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	first.Phase = model.PhaseComplete

	second, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.PhaseDefense, second.Phase)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.sampleSession()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, 1)))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, session.ID))

	_, err := s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	count, err := s.storage.CountTurns(s.ctx, session.ID, "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(0, count)
}

// Turn tests

func (s *StorageSuite) TestTurnsAreScopedByPlayerAndPhase() {
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, 1)))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseAttack, 1)))
	s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-2", model.PhaseDefense, 1)))

	count, err := s.storage.CountTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(1, count)

	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-1", model.PhaseAttack)
	s.Require().NoError(err)
	s.Require().Len(turns, 1)
	s.Equal(model.PhaseAttack, turns[0].Phase)
}

func (s *StorageSuite) TestGetTurnsPreservesInsertionOrder() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveTurn(s.ctx, s.sampleTurn("player-1", model.PhaseDefense, i)))
	}

	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Require().Len(turns, 3)
	for i, turn := range turns {
		s.Equal(i+1, turn.TurnNumber)
	}
}

func (s *StorageSuite) TestGetTurnsEmptyForUnknownKey() {
	turns, err := s.storage.GetTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Empty(turns)

	count, err := s.storage.CountTurns(s.ctx, "SESSION00001", "player-1", model.PhaseDefense)
	s.Require().NoError(err)
	s.Equal(0, count)
}
