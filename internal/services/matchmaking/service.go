package matchmaking

import (
	"log/slog"
	"sync"

	"github.com/promptduel/promptduel-go/internal/dependencies/clock"
	"github.com/promptduel/promptduel-go/internal/model"
)

// Service is a FIFO matchmaking queue. All mutation goes through Enqueue
// and Cancel under the service's mutex; there is no priority, region or
// skill matching. The queue itself issues no notifications - the caller is
// responsible for session creation and for notifying matched entries via
// their channel handles.
type Service struct {
	mu     sync.Mutex
	queue  []model.QueueEntry
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new matchmaking service
func New(clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		clock:  clk,
		logger: logger.With(slog.String("component", "matchmaking")),
	}
}

// Enqueue appends the player to the queue and pairs off the two oldest
// entries if the queue now holds at least two. Pairing is eager, so the
// queue never accumulates two waiters and a returned match always includes
// the caller as its newest entry. position is the caller's 1-based queue
// position, or 0 if they were matched. A player already waiting is not
// duplicated; their current position is returned.
func (s *Service) Enqueue(playerID model.PlayerID, handle model.ChannelHandle) (*model.Match, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos := s.position(playerID); pos > 0 {
		return nil, pos
	}

	s.queue = append(s.queue, model.QueueEntry{
		PlayerID:      playerID,
		ChannelHandle: handle,
		JoinedAt:      s.clock.Now(),
	})

	var match *model.Match
	if len(s.queue) >= 2 {
		match = &model.Match{
			PlayerOne: s.queue[0],
			PlayerTwo: s.queue[1],
		}
		s.queue = s.queue[2:]

		s.logger.Info("players matched",
			slog.String("player_one", string(match.PlayerOne.PlayerID)),
			slog.String("player_two", string(match.PlayerTwo.PlayerID)),
			slog.Int("waiting", len(s.queue)),
		)
	}

	return match, s.position(playerID)
}

// Cancel removes all entries for the player. Idempotent; no error if the
// player is not queued.
func (s *Service) Cancel(playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.queue[:0]
	for _, entry := range s.queue {
		if entry.PlayerID != playerID {
			filtered = append(filtered, entry)
		}
	}
	s.queue = filtered
}

// Position returns the player's 1-based queue position, or 0 if not queued
func (s *Service) Position(playerID model.PlayerID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position(playerID)
}

// Len returns the number of waiting entries
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// position must be called with the mutex held
func (s *Service) position(playerID model.PlayerID) int {
	for i, entry := range s.queue {
		if entry.PlayerID == playerID {
			return i + 1
		}
	}
	return 0
}
