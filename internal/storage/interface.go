package storage

import (
	"context"

	"github.com/promptduel/promptduel-go/internal/model"
)

// Storage defines the interface for data persistence. It is the single
// source of truth for session and turn state: callers re-read through it
// before every state-changing decision rather than caching across calls.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Turn operations. Turns are append-only; counts are always derived
	// from the stored turns, never kept as separate counters.
	SaveTurn(ctx context.Context, turn *model.Turn) error
	GetTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) ([]*model.Turn, error)
	CountTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) (int, error)
}
