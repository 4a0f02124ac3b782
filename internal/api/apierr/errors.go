package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptduel/promptduel-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeMessageTooLong         = "MESSAGE_TOO_LONG"
	CodeNotFound               = "NOT_FOUND"
	CodeNotAParticipant        = "NOT_A_PARTICIPANT"
	CodeGameOver               = "GAME_OVER"
	CodeTransitionInProgress   = "TRANSITION_IN_PROGRESS"
	CodeLimitReached           = "LIMIT_REACHED"
	CodeExternalServiceFailure = "EXTERNAL_SERVICE_FAILURE"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNotAParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotAParticipant, "Not a participant in this session"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "The game is already complete"}}
	case errors.Is(err, model.ErrTransitionInProgress):
		return &httpError{http.StatusConflict, APIError{CodeTransitionInProgress, "A phase transition is in progress"}}
	case errors.Is(err, model.ErrTurnLimitReached):
		return &httpError{http.StatusConflict, APIError{CodeLimitReached, "No turns remaining in this phase"}}
	case errors.Is(err, model.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Message must not be empty"}}
	case errors.Is(err, model.ErrMessageTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeMessageTooLong, "Message exceeds the character limit"}}
	case errors.Is(err, model.ErrExternalService):
		return &httpError{http.StatusBadGateway, APIError{CodeExternalServiceFailure, "Upstream AI service failed; please retry"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
