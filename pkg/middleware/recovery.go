package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/NaumanGems/Nauman-gems/pkg/httputil"

	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
)

// Recovery returns middleware that recovers from panics, logs the stack
// and responds with a 500 envelope instead of dropping the connection.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					httputil.WriteError(w, apperrors.Internal(nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
