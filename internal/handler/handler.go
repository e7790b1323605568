package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status, stable error
// code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeServiceError maps a service error onto an HTTP response. Domain errors
// carry messages that are safe to return verbatim; anything else is an
// internal fault and the client only sees a generic message.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch {
		case model.NotFoundCodes[domainErr.Code]:
			status = http.StatusNotFound
		case model.BadRequestCodes[domainErr.Code]:
			status = http.StatusBadRequest
		}

		logger.Warn().
			Str("code", domainErr.Code).
			Int("status", status).
			Msg(domainErr.Message)
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: model.ErrCodeInternalError})
}
