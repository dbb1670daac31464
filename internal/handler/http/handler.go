// Package http exposes the storefront over a chi-routed JSON API. Handlers
// stay thin: decode, validate, call the store or a service, write the
// envelope.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/NaumanGems/Nauman-gems/internal/auth"
	"github.com/NaumanGems/Nauman-gems/internal/catalog"
	"github.com/NaumanGems/Nauman-gems/internal/event"
	"github.com/NaumanGems/Nauman-gems/internal/notify"
	"github.com/NaumanGems/Nauman-gems/internal/store"
	"github.com/NaumanGems/Nauman-gems/internal/submit"
	"github.com/NaumanGems/Nauman-gems/internal/view"
	"github.com/NaumanGems/Nauman-gems/pkg/validator"
)

// Handler holds the wired services behind the API.
type Handler struct {
	stores        *store.Manager
	catalog       *catalog.Service
	auth          *auth.Service
	submissions   *submit.Service
	toasts        *notify.Buffer
	badge         *view.Badge
	cartPanel     *view.CartPanel
	wishlistPanel *view.WishlistPanel
	events        *event.Publisher
	validate      *validator.Validator
	checkoutURL   string
	log           *slog.Logger
}

// Deps bundles the handler's dependencies.
type Deps struct {
	Stores        *store.Manager
	Catalog       *catalog.Service
	Auth          *auth.Service
	Submissions   *submit.Service
	Toasts        *notify.Buffer
	Badge         *view.Badge
	CartPanel     *view.CartPanel
	WishlistPanel *view.WishlistPanel
	Events        *event.Publisher
	CheckoutURL   string
	Log           *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		stores:        d.Stores,
		catalog:       d.Catalog,
		auth:          d.Auth,
		submissions:   d.Submissions,
		toasts:        d.Toasts,
		badge:         d.Badge,
		cartPanel:     d.CartPanel,
		wishlistPanel: d.WishlistPanel,
		events:        d.Events,
		validate:      validator.New(),
		checkoutURL:   d.CheckoutURL,
		log:           d.Log,
	}
}

func (h *Handler) sessionStore(r *http.Request) *store.Store {
	return h.stores.ForSession(r.Context(), SessionID(r))
}

// bearerToken extracts the Authorization bearer token, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
