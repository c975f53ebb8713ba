package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cucinanostrard/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse is the standard error payload: a stable code plus the
// short user-facing message the admin UI displays verbatim.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response already started; nothing useful to send the client.
		return
	}
}

// writeError writes a plain error response.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeFailure maps a domain or gateway error onto a status code and the
// translated user-facing message. Validation errors come back as 400s;
// unknown errors become the generic retry message.
func writeFailure(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	code := model.ErrCodeInternalError

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		switch domainErr.Code {
		case model.ErrCodeProductNotFound, model.ErrCodeSessionNotFound:
			status = http.StatusNotFound
		case model.ErrCodeUnauthorised, model.ErrCodeInvalidPassword:
			status = http.StatusUnauthorized
		default:
			status = http.StatusBadRequest
		}
	}

	logger.Error().Err(err).Str("code", code).Int("status", status).Msg("request failed")
	writeJSON(w, status, ErrorResponse{Error: code, Message: model.UserMessage(err)})
}
