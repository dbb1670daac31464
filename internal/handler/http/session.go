package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/NaumanGems/Nauman-gems/pkg/logger"
)

// SessionHeader carries the client's session identity. Each session owns an
// isolated cart and wishlist.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// SessionMiddleware assigns a session ID to every request: the inbound
// header value, or a fresh UUID echoed back for the client to keep.
func SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(SessionHeader, id)

			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			ctx = logger.WithSessionID(ctx, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the request's session ID.
func SessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}
