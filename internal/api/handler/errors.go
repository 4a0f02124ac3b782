package handler

import (
	"net/http"

	"github.com/promptduel/promptduel-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest         = apierr.CodeInvalidRequest
	CodeMessageTooLong         = apierr.CodeMessageTooLong
	CodeNotFound               = apierr.CodeNotFound
	CodeNotAParticipant        = apierr.CodeNotAParticipant
	CodeGameOver               = apierr.CodeGameOver
	CodeTransitionInProgress   = apierr.CodeTransitionInProgress
	CodeLimitReached           = apierr.CodeLimitReached
	CodeExternalServiceFailure = apierr.CodeExternalServiceFailure
	CodeInternalError          = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
