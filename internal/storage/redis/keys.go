package redis

import (
	"fmt"

	"github.com/promptduel/promptduel-go/internal/model"
)

// Key prefix for all session-related data
const keyPrefix = "pduel"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// turnsKey returns the Redis key for the LIST of turns for a
// (session, player, phase) triple, in submission order
func turnsKey(sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) string {
	return fmt.Sprintf("%s:turns:%s:%s:%s", keyPrefix, sessionID, playerID, phase)
}

// turnsForSessionIndexKey returns the Redis key for the SET of turn-list
// keys belonging to a session, used for cleanup
func turnsForSessionIndexKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:idx:turns_for_session:%s", keyPrefix, sessionID)
}
