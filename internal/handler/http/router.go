package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NaumanGems/Nauman-gems/pkg/health"
	"github.com/NaumanGems/Nauman-gems/pkg/middleware"
)

// RouterConfig tunes the router-level middleware.
type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	ServiceName    string
}

// NewRouter assembles the API routes with the standard middleware chain.
func NewRouter(h *Handler, healthHandler *health.Handler, registry *prometheus.Registry, cfg RouterConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	metrics := middleware.NewHTTPMetrics(registry, cfg.ServiceName)

	r.Use(middleware.Recovery(log))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(metrics.Middleware())
	r.Use(middleware.RequestLogger(log))

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Post("/items", h.addToCart)
			r.Delete("/items/{productID}", h.removeFromCart)
			r.Patch("/items/{productID}/quantity", h.updateQuantity)
			r.Patch("/items/{productID}/size", h.updateSize)
			r.Delete("/", h.clearCart)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.getWishlist)
			r.Post("/{productID}/toggle", h.toggleWishlist)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/{productID}", h.getProduct)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/google", h.federatedLogin)
			r.Post("/refresh", h.refresh)
			r.Post("/logout", h.logout)
			r.Get("/me", h.me)
		})

		r.Post("/contact", h.contact)
		r.Post("/newsletter", h.newsletter)
		r.Post("/checkout", h.checkout)

		r.Get("/notifications", h.drainNotifications)

		r.Route("/views", func(r chi.Router) {
			r.Get("/badge", h.viewBadge)
			r.Get("/cart-panel", h.viewCartPanel)
			r.Get("/wishlist-panel", h.viewWishlistPanel)
		})
	})

	return r
}
