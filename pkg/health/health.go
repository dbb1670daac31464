package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/NaumanGems/Nauman-gems/pkg/httputil"
)

// Check reports whether a single dependency is healthy.
type Check func(ctx context.Context) error

// Handler serves liveness and readiness probes. Liveness always succeeds
// while the process runs; readiness runs the registered dependency checks.
type Handler struct {
	mu      sync.RWMutex
	checks  map[string]Check
	timeout time.Duration
}

// NewHandler creates a health handler with a per-check timeout.
func NewHandler(timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{
		checks:  make(map[string]Check),
		timeout: timeout,
	}
}

// Register adds a named readiness check.
func (h *Handler) Register(name string, check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Liveness handles GET /health/live.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "up"})
}

// Readiness handles GET /health/ready. It reports each check's result and
// returns 503 if any dependency fails.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := make(map[string]Check, len(h.checks))
	for name, c := range h.checks {
		checks[name] = c
	}
	h.mu.RUnlock()

	results := make(map[string]string, len(checks))
	healthy := true

	for name, check := range checks {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		if err := check(ctx); err != nil {
			results[name] = "down: " + err.Error()
			healthy = false
		} else {
			results[name] = "up"
		}
		cancel()
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}

	httputil.WriteJSON(w, status, map[string]any{
		"status": overall,
		"checks": results,
	})
}
