package events

import (
	"encoding/json"
	"log/slog"

	"github.com/promptduel/promptduel-go/internal/model"
)

// Broadcaster publishes typed JSON events to the two participants of a
// session and to queued players. Delivery is fire-and-forget: a
// disconnected participant misses the event and reconciles via a
// full-state read on reconnect.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// publish marshals the payload and broadcasts it on the topic's hub, if any
func (b *Broadcaster) publish(topic Topic, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(topic)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal event payload",
			slog.String("topic", string(topic)),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(eventType), data)
}

// TurnSubmitted announces a persisted turn to both participants
func (b *Broadcaster) TurnSubmitted(sessionID model.SessionID, payload model.TurnSubmittedPayload) {
	b.publish(SessionTopic(sessionID), model.EventTurnSubmitted, payload)
}

// TransitionTick announces the remaining countdown
func (b *Broadcaster) TransitionTick(sessionID model.SessionID, remaining int) {
	b.publish(SessionTopic(sessionID), model.EventTransitionTick, model.TransitionTickPayload{Remaining: remaining})
}

// TransitionEnded announces that the session advanced to the given phase
func (b *Broadcaster) TransitionEnded(sessionID model.SessionID, phase model.Phase) {
	b.publish(SessionTopic(sessionID), model.EventTransitionEnded, model.TransitionEndedPayload{Phase: phase})
}

// GameComplete announces the session outcome
func (b *Broadcaster) GameComplete(sessionID model.SessionID, winnerID model.PlayerID, reason model.EndReason) {
	b.publish(SessionTopic(sessionID), model.EventGameComplete, model.GameCompletePayload{
		WinnerID:  winnerID,
		EndReason: reason,
	})
}

// MatchFound notifies a queued player on their channel handle
func (b *Broadcaster) MatchFound(handle model.ChannelHandle, payload model.MatchFoundPayload) {
	b.publish(Topic(handle), model.EventMatchFound, payload)
}
