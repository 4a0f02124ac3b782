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
	"github.com/promptduel/promptduel-go/internal/services/session"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	sessions   *session.Controller
	hubManager *events.HubManager
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Controller, hubManager *events.HubManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "session_handler")),
	}
}

// SubmitTurn handles POST /sessions/{id}/turns
func (h *SessionHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.SubmitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	result, err := h.sessions.SubmitTurn(r.Context(), sessionID, model.PlayerID(req.PlayerID), req.Message)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TurnResultFromModel(result))
}

// GetState handles GET /sessions/{id}?player_id=
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	snap, err := h.sessions.ReadState(r.Context(), sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionStateFromSnapshot(snap))
}

// Forfeit handles POST /sessions/{id}/forfeit
func (h *SessionHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.ForfeitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if err := h.sessions.Forfeit(r.Context(), sessionID, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /sessions/{id}/events?player_id=, streaming session
// events over SSE. Only participants may subscribe.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	sess, err := h.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !sess.IsParticipant(playerID) {
		WriteError(w, model.ErrNotAParticipant)
		return
	}

	hub := h.hubManager.GetOrCreateHub(events.SessionTopic(sessionID))
	events.ServeSSE(w, r, hub, playerID)
}
