package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/culturalite/backend/internal/pkg/context"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, reusing the caller's when
// present, and echoes it back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(appCtx.WithRequestID(r.Context(), id)))
	})
}
