package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/culturalite/backend/internal/domain"
	"github.com/culturalite/backend/internal/logger"
)

// ErrorBody is the stable error shape: a safe message plus optional
// per-field details enumerating every violated rule.
type ErrorBody struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// WriteError converts a domain error into a consistent JSON HTTP error
// response. Non-domain errors are treated as internal errors (500) without
// leaking details; internals are logged server-side with request context.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred."
	var details map[string][]string

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
		details = de.Fields
		if de.Kind == domain.KindInternal {
			// generic body, full cause in the log
			message = "An unexpected error occurred."
			details = nil
			logger.WithCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		}
	} else {
		logger.WithCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message, Details: details})
}

// statusFromKind maps domain error kinds to HTTP status codes.
// Conflicts surface as 400 with field detail, matching the API contract.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
