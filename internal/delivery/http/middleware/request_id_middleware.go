package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	HeaderRequestID = "X-Request-ID"

	RequestIDKey contextKey = "request_id"
)

// RequestID reuses an incoming X-Request-ID or generates one, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, rid)
		ctx := context.WithValue(r.Context(), RequestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext extracts the request ID from context
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	rid, ok := ctx.Value(RequestIDKey).(string)
	return rid, ok
}
