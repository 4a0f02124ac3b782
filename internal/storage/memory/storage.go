package memory

import (
	"context"
	"sync"

	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions map[model.SessionID]*model.Session
	turns    map[turnKey][]*model.Turn
}

type turnKey struct {
	sessionID model.SessionID
	playerID  model.PlayerID
	phase     model.Phase
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.Session),
		turns:    make(map[turnKey][]*model.Turn),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	for key := range s.turns {
		if key.sessionID == id {
			delete(s.turns, key)
		}
	}
	return nil
}

// Turn operations

func (s *Storage) SaveTurn(ctx context.Context, turn *model.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := turnKey{sessionID: turn.SessionID, playerID: turn.PlayerID, phase: turn.Phase}
	copied := *turn
	s.turns[key] = append(s.turns[key], &copied)
	return nil
}

func (s *Storage) GetTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) ([]*model.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := turnKey{sessionID: sessionID, playerID: playerID, phase: phase}
	stored := s.turns[key]
	turns := make([]*model.Turn, len(stored))
	for i, t := range stored {
		copied := *t
		turns[i] = &copied
	}
	return turns, nil
}

func (s *Storage) CountTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := turnKey{sessionID: sessionID, playerID: playerID, phase: phase}
	return len(s.turns[key]), nil
}
