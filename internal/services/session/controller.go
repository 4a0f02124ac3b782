package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptduel/promptduel-go/internal/ai"
	"github.com/promptduel/promptduel-go/internal/dependencies/clock"
	"github.com/promptduel/promptduel-go/internal/dependencies/random"
	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/services/scenario"
	"github.com/promptduel/promptduel-go/internal/storage"
)

const (
	// SessionIDLength is the length of generated session IDs
	SessionIDLength = 12
	// SessionIDAlphabet is the characters used in session IDs
	SessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds the tunable game rules
type Config struct {
	// TurnLimit is the per-player turn cap for each phase
	TurnLimit int
	// MaxMessageLength is the character limit for player messages
	MaxMessageLength int
	// TransitionTicks is the countdown length between phases
	TransitionTicks int
	// TickInterval is the wall-clock duration of one countdown tick
	TickInterval time.Duration
}

// DefaultConfig returns the production game rules
func DefaultConfig() Config {
	return Config{
		TurnLimit:        5,
		MaxMessageLength: 250,
		TransitionTicks:  5,
		TickInterval:     time.Second,
	}
}

// Controller manages the session phase state machine and turn flow.
// The repository is the single source of truth: every operation re-reads
// phase and counts inside the session's exclusive section before acting.
type Controller struct {
	storage   storage.Storage
	ai        *ai.Service
	scenarios *scenario.Service
	publisher Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	cfg       Config
	locks     *lockTable
}

// NewController creates a new session controller
func NewController(
	store storage.Storage,
	aiService *ai.Service,
	scenarios *scenario.Service,
	publisher Publisher,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Controller{
		storage:   store,
		ai:        aiService,
		scenarios: scenarios,
		publisher: publisher,
		clock:     clk,
		random:    rnd,
		logger:    logger.With(slog.String("component", "session")),
		cfg:       cfg,
		locks:     newLockTable(),
	}
}

// TurnResult is the outcome of a successful turn submission
type TurnResult struct {
	Turn           *model.Turn
	NewCount       int
	IsTransition   bool
	IsGameComplete bool
}

// Create starts a new session between two matched players, generating the
// persona and secret the session is played over
func (c *Controller) Create(ctx context.Context, playerOne, playerTwo model.PlayerID) (*model.Session, error) {
	now := c.clock.Now()
	sc := c.scenarios.Generate()

	session := &model.Session{
		ID:                 model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet)),
		PlayerOneID:        playerOne,
		PlayerTwoID:        playerTwo,
		Phase:              model.PhaseDefense,
		GeneratedCharacter: sc.Character,
		GeneratedSecret:    sc.Secret,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("player_one", string(playerOne)),
		slog.String("player_two", string(playerTwo)),
	)

	return session, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// SubmitTurn validates and processes one player turn: persona reply, turn
// persistence, count update, and phase-boundary / game-end evaluation.
// The whole sequence runs inside the session's exclusive section so two
// near-simultaneous submissions cannot both pass the limit check.
func (c *Controller) SubmitTurn(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, model.ErrEmptyMessage
	}
	if len(message) > c.cfg.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}

	unlock := c.locks.lock(sessionID)
	defer unlock()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParticipant(playerID) {
		return nil, model.ErrNotAParticipant
	}

	// A past-due countdown is finalized before preconditions apply, so a
	// submission after a lost timer sees the advanced phase instead of a
	// permanently stuck transition.
	session, err = c.finalizeOverdueLocked(ctx, session)
	if err != nil {
		return nil, err
	}

	if session.IsComplete() {
		return nil, model.ErrGameOver
	}
	if session.IsTransitioning {
		return nil, model.ErrTransitionInProgress
	}

	count, err := c.storage.CountTurns(ctx, sessionID, playerID, session.Phase)
	if err != nil {
		return nil, err
	}
	if count >= c.cfg.TurnLimit {
		return nil, model.ErrTurnLimitReached
	}

	history, err := c.storage.GetTurns(ctx, sessionID, playerID, session.Phase)
	if err != nil {
		return nil, err
	}

	reply, err := c.ai.Reply(ctx, session, playerID, history, message)
	if err != nil {
		return nil, externalFailure("responder", err)
	}

	turn := &model.Turn{
		ID:            model.TurnID(uuid.NewString()),
		SessionID:     sessionID,
		PlayerID:      playerID,
		Phase:         session.Phase,
		TurnNumber:    count + 1,
		PlayerMessage: message,
		AIResponse:    reply,
		CreatedAt:     c.clock.Now(),
	}
	newCount := count + 1
	atLimit := newCount == c.cfg.TurnLimit

	// Final-turn follow-up calls run before the turn is persisted, so an
	// external failure leaves no partial state and the submission stays
	// retryable.
	var summary string
	var revealed bool
	if atLimit {
		conversation := append(history, turn)
		switch session.Phase {
		case model.PhaseDefense:
			summary, err = c.ai.SummarizeDefense(ctx, conversation)
			if err != nil {
				return nil, externalFailure("summarizer", err)
			}
		case model.PhaseAttack:
			revealed, err = c.ai.CheckSecretRevealed(ctx, session, conversation)
			if err != nil {
				return nil, externalFailure("judge", err)
			}
		}
	}

	if err := c.storage.SaveTurn(ctx, turn); err != nil {
		return nil, err
	}

	// The opponent sees every message as it lands, ahead of any
	// transition or completion events.
	c.publisher.TurnSubmitted(sessionID, model.TurnSubmittedPayload{
		PlayerID: playerID,
		NewCount: newCount,
		Message:  message,
		Reply:    reply,
	})

	result := &TurnResult{Turn: turn, NewCount: newCount}
	if !atLimit {
		return result, nil
	}

	switch session.Phase {
	case model.PhaseDefense:
		session.SetDefenseSummary(playerID, summary)
		session.UpdatedAt = c.clock.Now()

		oppCount, err := c.storage.CountTurns(ctx, sessionID, session.Opponent(playerID), model.PhaseDefense)
		if err != nil {
			return nil, err
		}
		if oppCount >= c.cfg.TurnLimit {
			// The second player to reach the limit triggers the transition
			if err := c.beginTransitionLocked(ctx, session); err != nil {
				return nil, err
			}
			result.IsTransition = true
		} else if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}

	case model.PhaseAttack:
		if revealed {
			if err := c.completeLocked(ctx, session, playerID, model.EndReasonSecretRevealed); err != nil {
				return nil, err
			}
			result.IsGameComplete = true
			break
		}

		oppCount, err := c.storage.CountTurns(ctx, sessionID, session.Opponent(playerID), model.PhaseAttack)
		if err != nil {
			return nil, err
		}
		if oppCount >= c.cfg.TurnLimit {
			// Neither attack broke through: the first player to have
			// finished their attack turns takes the win.
			if err := c.completeLocked(ctx, session, session.Opponent(playerID), model.EndReasonTurnsExhausted); err != nil {
				return nil, err
			}
			result.IsGameComplete = true
		}
	}

	return result, nil
}

// Forfeit concedes the session on behalf of playerID; the opponent wins
func (c *Controller) Forfeit(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) error {
	unlock := c.locks.lock(sessionID)
	defer unlock()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsParticipant(playerID) {
		return model.ErrNotAParticipant
	}
	if session.IsComplete() {
		return model.ErrGameOver
	}

	return c.completeLocked(ctx, session, session.Opponent(playerID), model.EndReasonForfeit)
}

// completeLocked moves the session to its terminal state in a single write
// and emits the completion event. Must be called with the session lock held.
func (c *Controller) completeLocked(ctx context.Context, session *model.Session, winnerID model.PlayerID, reason model.EndReason) error {
	session.Phase = model.PhaseComplete
	session.WinnerID = winnerID
	session.EndReason = reason
	session.IsTransitioning = false
	session.TransitionEndsAt = nil
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("session complete",
		slog.String("session_id", string(session.ID)),
		slog.String("winner_id", string(winnerID)),
		slog.String("end_reason", string(reason)),
	)

	c.publisher.GameComplete(session.ID, winnerID, reason)
	return nil
}

// externalFailure tags a responder/judge error with the external-service
// sentinel so the API layer can map it distinctly
func externalFailure(capability string, err error) error {
	return fmt.Errorf("%w: %s: %s", model.ErrExternalService, capability, err)
}
