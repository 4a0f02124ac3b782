package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/promptduel/promptduel-go/internal/api/handler"
	"github.com/promptduel/promptduel-go/internal/api/middleware"
	"github.com/promptduel/promptduel-go/internal/events"
	"github.com/promptduel/promptduel-go/internal/services/matchmaking"
	"github.com/promptduel/promptduel-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Matchmaking       *matchmaking.Service
	SessionController *session.Controller
	Broadcaster       *events.Broadcaster
	HubManager        *events.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	queueHandler := handler.NewQueueHandler(cfg.Matchmaking, cfg.SessionController, cfg.Broadcaster, cfg.HubManager, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.HubManager, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Matchmaking queue routes
	api.HandleFunc("/queue", queueHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/queue/{player_id}", queueHandler.Leave).Methods(http.MethodDelete)
	api.HandleFunc("/queue/{player_id}/events", queueHandler.Events).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/sessions/{id}", sessionHandler.GetState).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/turns", sessionHandler.SubmitTurn).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/forfeit", sessionHandler.Forfeit).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
