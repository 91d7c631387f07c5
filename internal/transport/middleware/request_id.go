package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jaapghar/jaapghar-backend/pkg/ctxutil"
)

// RequestIDHeader carries the correlation id between the app and the server.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that adopts the caller's request id, or mints
// a UUID when none came in, and echoes it back on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
