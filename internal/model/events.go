package model

// EventType identifies the type of realtime event
type EventType string

const (
	// Session events
	EventTurnSubmitted   EventType = "turn-submitted"
	EventTransitionTick  EventType = "transition-tick"
	EventTransitionEnded EventType = "transition-ended"
	EventGameComplete    EventType = "game-complete"

	// Queue events
	EventMatchFound EventType = "match-found"
)

// TurnSubmittedPayload is published to both participants after every
// persisted turn, before any transition or completion events
type TurnSubmittedPayload struct {
	PlayerID PlayerID `json:"player_id"`
	NewCount int      `json:"new_count"`
	Message  string   `json:"message"`
	Reply    string   `json:"reply"`
}

// TransitionTickPayload carries the remaining countdown seconds
type TransitionTickPayload struct {
	Remaining int `json:"remaining"`
}

// TransitionEndedPayload announces the phase the session advanced to
type TransitionEndedPayload struct {
	Phase Phase `json:"phase"`
}

// GameCompletePayload announces the session outcome
type GameCompletePayload struct {
	WinnerID  PlayerID  `json:"winner_id"`
	EndReason EndReason `json:"end_reason"`
}

// MatchFoundPayload notifies a queued player that a session was created
type MatchFoundPayload struct {
	SessionID  SessionID `json:"session_id"`
	OpponentID PlayerID  `json:"opponent_id"`
}
