package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/promptduel/promptduel-go/internal/api/request"
	"github.com/promptduel/promptduel-go/internal/api/response"
	"github.com/promptduel/promptduel-go/internal/events"
	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/services/matchmaking"
	"github.com/promptduel/promptduel-go/internal/services/session"
)

// QueueHandler handles matchmaking queue endpoints
type QueueHandler struct {
	matchmaking *matchmaking.Service
	sessions    *session.Controller
	broadcaster *events.Broadcaster
	hubManager  *events.HubManager
	logger      *slog.Logger
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(
	matchmakingService *matchmaking.Service,
	sessions *session.Controller,
	broadcaster *events.Broadcaster,
	hubManager *events.HubManager,
	logger *slog.Logger,
) *QueueHandler {
	return &QueueHandler{
		matchmaking: matchmakingService,
		sessions:    sessions,
		broadcaster: broadcaster,
		hubManager:  hubManager,
		logger:      logger.With(slog.String("component", "queue_handler")),
	}
}

// Join handles POST /queue. The caller either matches immediately with a
// waiting player or is queued; a waiting player learns of their match via
// the match-found event on their queue topic.
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	handle := model.ChannelHandle(events.QueueTopic(playerID))

	match, position := h.matchmaking.Enqueue(playerID, handle)
	if match == nil {
		response.JSON(w, http.StatusOK, response.QueueStatus{Position: position})
		return
	}

	created, err := h.sessions.Create(r.Context(), match.PlayerOne.PlayerID, match.PlayerTwo.PlayerID)
	if err != nil {
		h.logger.Error("session creation for match failed", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}

	// Notify both matched players on their queue topics. The HTTP caller
	// also gets the session in the response body.
	for _, pair := range []struct {
		entry    model.QueueEntry
		opponent model.PlayerID
	}{
		{match.PlayerOne, match.PlayerTwo.PlayerID},
		{match.PlayerTwo, match.PlayerOne.PlayerID},
	} {
		h.broadcaster.MatchFound(pair.entry.ChannelHandle, model.MatchFoundPayload{
			SessionID:  created.ID,
			OpponentID: pair.opponent,
		})
	}

	response.JSON(w, http.StatusOK, response.QueueStatus{
		Matched:    true,
		SessionID:  string(created.ID),
		OpponentID: string(created.Opponent(playerID)),
	})
}

// Leave handles DELETE /queue/{player_id}
func (h *QueueHandler) Leave(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])
	h.matchmaking.Cancel(playerID)
	response.NoContent(w)
}

// Events handles GET /queue/{player_id}/events, streaming match
// notifications over SSE
func (h *QueueHandler) Events(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])
	hub := h.hubManager.GetOrCreateHub(events.QueueTopic(playerID))
	events.ServeSSE(w, r, hub, playerID)
}
