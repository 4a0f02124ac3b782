package session

import (
	"context"

	"github.com/promptduel/promptduel-go/internal/model"
)

// Snapshot is the authoritative client view of a session, reconstructed
// entirely from stored state so a polling client and an event-listening
// client converge on identical state. A non-participant gets only the
// Spectating marker.
type Snapshot struct {
	SessionID  model.SessionID
	Spectating bool

	Phase     model.Phase
	Character string

	MyTurnCount       int
	OpponentTurnCount int

	// The caller's ordered history for the current phase
	Turns []*model.Turn

	// The opponent's defense summary, present during the attack phase
	OpponentDefenseSummary string

	IsComplete bool
	WinnerID   model.PlayerID
	EndReason  model.EndReason

	IsTransitioning bool
	// Countdown recomputed from the stored deadline, clamped at zero
	TransitionRemaining int
}

// ReadState reconstructs a participant's view of the session. An overdue
// transition deadline is finalized here rather than reported as a stale or
// negative countdown, which lets a reconnecting client resume mid- or
// post-countdown without having seen any tick events.
func (c *Controller) ReadState(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*Snapshot, error) {
	unlock := c.locks.lock(sessionID)
	defer unlock()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(playerID) {
		return &Snapshot{SessionID: sessionID, Spectating: true}, nil
	}

	session, err = c.finalizeOverdueLocked(ctx, session)
	if err != nil {
		return nil, err
	}

	// Completed sessions report the attack phase's turns and counts
	countPhase := session.Phase
	if countPhase == model.PhaseComplete {
		countPhase = model.PhaseAttack
	}

	myCount, err := c.storage.CountTurns(ctx, sessionID, playerID, countPhase)
	if err != nil {
		return nil, err
	}
	oppCount, err := c.storage.CountTurns(ctx, sessionID, session.Opponent(playerID), countPhase)
	if err != nil {
		return nil, err
	}
	turns, err := c.storage.GetTurns(ctx, sessionID, playerID, countPhase)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SessionID:         sessionID,
		Phase:             session.Phase,
		Character:         session.GeneratedCharacter,
		MyTurnCount:       myCount,
		OpponentTurnCount: oppCount,
		Turns:             turns,
		IsComplete:        session.IsComplete(),
		WinnerID:          session.WinnerID,
		EndReason:         session.EndReason,
		IsTransitioning:   session.IsTransitioning,
	}

	if session.Phase == model.PhaseAttack {
		snap.OpponentDefenseSummary = session.DefenseSummaryFor(playerID)
	}

	if session.IsTransitioning && session.TransitionEndsAt != nil {
		snap.TransitionRemaining = c.remainingTicks(*session.TransitionEndsAt)
	}

	return snap, nil
}
