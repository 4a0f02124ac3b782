package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/promptduel/promptduel-go/internal/model"
)

const (
	replyMaxTokens   = 150
	summaryMaxTokens = 150
	verdictMaxTokens = 5
)

// Service assembles conversation context and drives the three capabilities
// the engine needs from a language model: persona replies, defense
// summarization and secret-disclosure verdicts.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// New creates a new AI service
func New(provider Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger.With(slog.String("component", "ai")),
	}
}

// Reply produces the persona's response to a new player message.
// history is the ordered prior turn history for (session, player, phase);
// during the attack phase the opponent's defense summary is added as extra
// system framing.
func (s *Service) Reply(ctx context.Context, session *model.Session, playerID model.PlayerID, history []*model.Turn, message string) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt(session)},
	}

	if session.Phase == model.PhaseAttack {
		if summary := session.DefenseSummaryFor(playerID); summary != "" {
			messages = append(messages, Message{
				Role:    "system",
				Content: "Defense training: " + summary,
			})
		}
	}

	for _, turn := range history {
		messages = append(messages,
			Message{Role: "user", Content: turn.PlayerMessage},
			Message{Role: "assistant", Content: turn.AIResponse},
		)
	}
	messages = append(messages, Message{Role: "user", Content: message})

	reply, err := s.provider.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   replyMaxTokens,
		Temperature: 1,
	})
	if err != nil {
		s.logger.Error("responder call failed",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return "", err
	}
	return reply, nil
}

// SummarizeDefense condenses a player's defense conversation into the
// summary used as the opponent's attack-phase context
func (s *Service) SummarizeDefense(ctx context.Context, turns []*model.Turn) (string, error) {
	messages := []Message{
		{Role: "system", Content: summarizePrompt},
		{Role: "user", Content: transcript(turns, "Player")},
	}

	return s.provider.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   summaryMaxTokens,
		Temperature: 1,
	})
}

// CheckSecretRevealed judges a full attack conversation and reports whether
// the persona gave the secret away
func (s *Service) CheckSecretRevealed(ctx context.Context, session *model.Session, attackTurns []*model.Turn) (bool, error) {
	messages := []Message{
		{Role: "system", Content: judgePrompt(session, transcript(attackTurns, "Attacker"))},
	}

	verdict, err := s.provider.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   verdictMaxTokens,
		Temperature: 1,
	})
	if err != nil {
		return false, err
	}

	revealed := strings.ToUpper(strings.TrimSpace(verdict)) == "YES"
	s.logger.Info("judge verdict",
		slog.String("session_id", string(session.ID)),
		slog.Bool("revealed", revealed),
	)
	return revealed, nil
}
