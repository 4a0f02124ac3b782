package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// PlayerID uniquely identifies a player
type PlayerID string

// Phase represents the current phase of a session
type Phase string

const (
	PhaseDefense  Phase = "DEFENSE"  // Players training their AI persona
	PhaseAttack   Phase = "ATTACK"   // Players extracting the opponent's secret
	PhaseComplete Phase = "COMPLETE" // Terminal
)

// Next returns the phase that follows p in normal progression
func (p Phase) Next() Phase {
	switch p {
	case PhaseDefense:
		return PhaseAttack
	default:
		return PhaseComplete
	}
}

// EndReason describes why a session completed
type EndReason string

const (
	EndReasonSecretRevealed EndReason = "SECRET_REVEALED"
	EndReasonTurnsExhausted EndReason = "TURNS_EXHAUSTED"
	EndReasonForfeit        EndReason = "FORFEIT"
)

// Session represents one adversarial match between two players and an AI persona
type Session struct {
	ID SessionID

	// Participants (immutable once assigned)
	PlayerOneID PlayerID
	PlayerTwoID PlayerID

	Phase Phase

	// Persona content fixed at creation. The secret is stored but never
	// included in client-facing responses.
	GeneratedCharacter string
	GeneratedSecret    string

	// Set exactly once when the respective player's defense phase ends
	PlayerOneDefenseSummary string
	PlayerTwoDefenseSummary string

	// Transition state; both cleared in the same write when the countdown resolves
	IsTransitioning  bool
	TransitionEndsAt *time.Time

	// Outcome; set exactly once on transition to COMPLETE.
	// Invariant: Phase == COMPLETE iff WinnerID != "".
	WinnerID  PlayerID
	EndReason EndReason

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsParticipant returns true if the player is one of the two participants
func (s *Session) IsParticipant(playerID PlayerID) bool {
	return playerID == s.PlayerOneID || playerID == s.PlayerTwoID
}

// Opponent returns the other participant's ID
func (s *Session) Opponent(playerID PlayerID) PlayerID {
	if playerID == s.PlayerOneID {
		return s.PlayerTwoID
	}
	return s.PlayerOneID
}

// IsComplete returns true if the session has reached its terminal phase
func (s *Session) IsComplete() bool {
	return s.Phase == PhaseComplete
}

// DefenseSummaryFor returns the summary an attacker faces: the one produced
// by their opponent's defense phase
func (s *Session) DefenseSummaryFor(attackerID PlayerID) string {
	if attackerID == s.PlayerOneID {
		return s.PlayerTwoDefenseSummary
	}
	return s.PlayerOneDefenseSummary
}

// SetDefenseSummary records the summary for the given player's own defense
func (s *Session) SetDefenseSummary(playerID PlayerID, summary string) {
	if playerID == s.PlayerOneID {
		s.PlayerOneDefenseSummary = summary
	} else {
		s.PlayerTwoDefenseSummary = summary
	}
}
