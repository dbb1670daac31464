package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/NaumanGems/Nauman-gems/pkg/logger"
)

const correlationIDHeader = "X-Correlation-ID"

// CorrelationID returns middleware that ensures every request carries a
// correlation ID, propagating an inbound one or generating a new UUID.
// The ID is stored in the request context and echoed on the response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(correlationIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := logger.WithCorrelationID(r.Context(), id)
			w.Header().Set(correlationIDHeader, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
