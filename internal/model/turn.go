package model

import "time"

// TurnID uniquely identifies a turn
type TurnID string

// Turn is one message/response exchange, scoped to a session, player and
// phase. Turns are append-only: created by the turn orchestrator and never
// mutated or deleted.
type Turn struct {
	ID        TurnID
	SessionID SessionID
	PlayerID  PlayerID

	// The phase active when the turn was submitted (DEFENSE or ATTACK)
	Phase Phase

	// 1-based, gapless per (session, player, phase)
	TurnNumber int

	PlayerMessage string
	AIResponse    string

	CreatedAt time.Time
}
