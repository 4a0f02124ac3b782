package session

import "github.com/promptduel/promptduel-go/internal/model"

// Publisher delivers state-change notifications to the session's
// participants. Delivery must never block turn processing; implementations
// are fire-and-forget.
type Publisher interface {
	TurnSubmitted(sessionID model.SessionID, payload model.TurnSubmittedPayload)
	TransitionTick(sessionID model.SessionID, remaining int)
	TransitionEnded(sessionID model.SessionID, phase model.Phase)
	GameComplete(sessionID model.SessionID, winnerID model.PlayerID, reason model.EndReason)
}

// NopPublisher discards all events
type NopPublisher struct{}

func (NopPublisher) TurnSubmitted(model.SessionID, model.TurnSubmittedPayload)     {}
func (NopPublisher) TransitionTick(model.SessionID, int)                           {}
func (NopPublisher) TransitionEnded(model.SessionID, model.Phase)                  {}
func (NopPublisher) GameComplete(model.SessionID, model.PlayerID, model.EndReason) {}
