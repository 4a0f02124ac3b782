package mocks

import (
	"sync"

	"github.com/promptduel/promptduel-go/internal/model"
)

// PublishedEvent is a single recorded notification
type PublishedEvent struct {
	SessionID model.SessionID
	Type      model.EventType
	Payload   any
}

// RecordingPublisher captures session notifications for assertions. Safe for
// concurrent use since transition events arrive from a timer goroutine.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) record(sessionID model.SessionID, eventType model.EventType, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{
		SessionID: sessionID,
		Type:      eventType,
		Payload:   payload,
	})
}

func (p *RecordingPublisher) TurnSubmitted(sessionID model.SessionID, payload model.TurnSubmittedPayload) {
	p.record(sessionID, model.EventTurnSubmitted, payload)
}

func (p *RecordingPublisher) TransitionTick(sessionID model.SessionID, remaining int) {
	p.record(sessionID, model.EventTransitionTick, model.TransitionTickPayload{Remaining: remaining})
}

func (p *RecordingPublisher) TransitionEnded(sessionID model.SessionID, phase model.Phase) {
	p.record(sessionID, model.EventTransitionEnded, model.TransitionEndedPayload{Phase: phase})
}

func (p *RecordingPublisher) GameComplete(sessionID model.SessionID, winnerID model.PlayerID, reason model.EndReason) {
	p.record(sessionID, model.EventGameComplete, model.GameCompletePayload{
		WinnerID:  winnerID,
		EndReason: reason,
	})
}

// Events returns a copy of everything recorded so far
func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// EventsOfType filters the recorded events by type
func (p *RecordingPublisher) EventsOfType(eventType model.EventType) []PublishedEvent {
	var out []PublishedEvent
	for _, ev := range p.Events() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
