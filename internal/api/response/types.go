package response

import (
	"time"

	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/services/session"
)

// QueueStatus is the response to an enqueue request. Exactly one of the
// matched fields or Position is meaningful, discriminated by Matched.
type QueueStatus struct {
	Matched    bool   `json:"matched"`
	Position   int    `json:"position,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	OpponentID string `json:"opponent_id,omitempty"`
}

// Turn represents a single exchange in API responses
type Turn struct {
	TurnNumber int       `json:"turn_number"`
	Message    string    `json:"message"`
	Reply      string    `json:"reply"`
	CreatedAt  time.Time `json:"created_at"`
}

// TurnFromModel converts a model.Turn to a response Turn
func TurnFromModel(t *model.Turn) Turn {
	return Turn{
		TurnNumber: t.TurnNumber,
		Message:    t.PlayerMessage,
		Reply:      t.AIResponse,
		CreatedAt:  t.CreatedAt,
	}
}

// TurnResult is the response to a turn submission
type TurnResult struct {
	Turn           Turn `json:"turn"`
	NewCount       int  `json:"new_count"`
	IsTransition   bool `json:"is_transition"`
	IsGameComplete bool `json:"is_game_complete"`
}

// TurnResultFromModel converts a session.TurnResult to a response
func TurnResultFromModel(res *session.TurnResult) TurnResult {
	return TurnResult{
		Turn:           TurnFromModel(res.Turn),
		NewCount:       res.NewCount,
		IsTransition:   res.IsTransition,
		IsGameComplete: res.IsGameComplete,
	}
}

// SessionState is a participant's view of a session. The generated secret
// is never included; spectators get only the Spectating marker.
type SessionState struct {
	SessionID  string `json:"session_id"`
	Spectating bool   `json:"spectating,omitempty"`

	Phase     string `json:"phase,omitempty"`
	Character string `json:"character,omitempty"`

	MyTurnCount       int    `json:"my_turn_count"`
	OpponentTurnCount int    `json:"opponent_turn_count"`
	Turns             []Turn `json:"turns"`

	OpponentDefenseSummary string `json:"opponent_defense_summary,omitempty"`

	IsComplete bool   `json:"is_complete"`
	WinnerID   string `json:"winner_id,omitempty"`
	EndReason  string `json:"end_reason,omitempty"`

	IsTransitioning     bool `json:"is_transitioning"`
	TransitionRemaining int  `json:"transition_remaining,omitempty"`
}

// SessionStateFromSnapshot converts a session.Snapshot to a response
func SessionStateFromSnapshot(snap *session.Snapshot) SessionState {
	state := SessionState{
		SessionID:  string(snap.SessionID),
		Spectating: snap.Spectating,
	}
	if snap.Spectating {
		state.Turns = []Turn{}
		return state
	}

	turns := make([]Turn, 0, len(snap.Turns))
	for _, t := range snap.Turns {
		turns = append(turns, TurnFromModel(t))
	}

	state.Phase = string(snap.Phase)
	state.Character = snap.Character
	state.MyTurnCount = snap.MyTurnCount
	state.OpponentTurnCount = snap.OpponentTurnCount
	state.Turns = turns
	state.OpponentDefenseSummary = snap.OpponentDefenseSummary
	state.IsComplete = snap.IsComplete
	state.WinnerID = string(snap.WinnerID)
	state.EndReason = string(snap.EndReason)
	state.IsTransitioning = snap.IsTransitioning
	state.TransitionRemaining = snap.TransitionRemaining
	return state
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
