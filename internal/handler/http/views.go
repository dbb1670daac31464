package http

import (
	"net/http"

	"github.com/NaumanGems/Nauman-gems/pkg/httputil"
)

// Fragment handlers touch the store first so a fresh session's persisted
// records are loaded before the view renders.

func (h *Handler) viewBadge(w http.ResponseWriter, r *http.Request) {
	h.sessionStore(r)
	httputil.WriteJSON(w, http.StatusOK, h.badge.Render(SessionID(r)))
}

func (h *Handler) viewCartPanel(w http.ResponseWriter, r *http.Request) {
	h.sessionStore(r)
	httputil.WriteJSON(w, http.StatusOK, h.cartPanel.Render(SessionID(r)))
}

func (h *Handler) viewWishlistPanel(w http.ResponseWriter, r *http.Request) {
	h.sessionStore(r)
	httputil.WriteJSON(w, http.StatusOK, h.wishlistPanel.Render(r.Context(), SessionID(r)))
}

func (h *Handler) drainNotifications(w http.ResponseWriter, r *http.Request) {
	toasts := h.toasts.Drain(SessionID(r))
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"toasts": toasts})
}
