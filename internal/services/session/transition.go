package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/promptduel/promptduel-go/internal/model"
)

// beginTransitionLocked arms the countdown between phases: one write sets
// both transition fields, then a background goroutine ticks until the
// wall-clock deadline. Exactly one timer can be active per session - the
// IsTransitioning guard in SubmitTurn prevents re-arming. Must be called
// with the session lock held.
func (c *Controller) beginTransitionLocked(ctx context.Context, session *model.Session) error {
	deadline := c.clock.Now().Add(time.Duration(c.cfg.TransitionTicks) * c.cfg.TickInterval)
	session.IsTransitioning = true
	session.TransitionEndsAt = &deadline
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("phase transition started",
		slog.String("session_id", string(session.ID)),
		slog.Time("ends_at", deadline),
	)

	go c.runTransition(session.ID, deadline)
	return nil
}

// runTransition publishes countdown ticks until the deadline, then commits
// the phase change. Remaining time is always recomputed from the deadline
// so a delayed tick cannot desynchronize the reported countdown. The
// session is re-read before each tick: a forfeit or an eager finalization
// can settle the session mid-countdown, and clients must not receive
// countdown ticks after the game is decided.
func (c *Controller) runTransition(sessionID model.SessionID, deadline time.Time) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		current, err := c.storage.GetSession(ctx, sessionID)
		if err != nil {
			c.logger.Error("transition tick failed to load session",
				slog.String("session_id", string(sessionID)),
				slog.String("error", err.Error()),
			)
			return
		}
		if !current.IsTransitioning {
			return
		}

		remaining := c.remainingTicks(deadline)
		c.publisher.TransitionTick(sessionID, remaining)
		if remaining <= 0 {
			break
		}
		<-ticker.C
	}

	unlock := c.locks.lock(sessionID)
	defer unlock()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		c.logger.Error("transition finalization failed to load session",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return
	}

	// A read path may have finalized an overdue countdown already
	if !session.IsTransitioning {
		return
	}

	if err := c.completeTransitionLocked(ctx, session); err != nil {
		c.logger.Error("transition finalization failed",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
	}
}

// completeTransitionLocked advances the phase and clears both transition
// fields in a single write, then emits the transition-ended event. Phase
// counts reset implicitly: they are derived from turn rows partitioned by
// phase. Must be called with the session lock held.
func (c *Controller) completeTransitionLocked(ctx context.Context, session *model.Session) error {
	session.Phase = session.Phase.Next()
	session.IsTransitioning = false
	session.TransitionEndsAt = nil
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("phase transition complete",
		slog.String("session_id", string(session.ID)),
		slog.String("phase", string(session.Phase)),
	)

	c.publisher.TransitionEnded(session.ID, session.Phase)
	return nil
}

// finalizeOverdueLocked eagerly commits a transition whose deadline has
// passed, covering the case where the owning timer goroutine did not
// survive (e.g. process restart). Returns the possibly-updated session.
// Must be called with the session lock held.
func (c *Controller) finalizeOverdueLocked(ctx context.Context, session *model.Session) (*model.Session, error) {
	if !session.IsTransitioning || session.TransitionEndsAt == nil {
		return session, nil
	}
	if c.clock.Until(*session.TransitionEndsAt) > 0 {
		return session, nil
	}
	if err := c.completeTransitionLocked(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// remainingTicks converts the time left until deadline into whole ticks,
// rounding up and clamping at zero
func (c *Controller) remainingTicks(deadline time.Time) int {
	until := c.clock.Until(deadline)
	if until <= 0 {
		return 0
	}
	return int((until + c.cfg.TickInterval - 1) / c.cfg.TickInterval)
}
