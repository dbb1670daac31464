// Package app wires the storefront together and runs the HTTP server.
// Collaborator outages at boot degrade the relevant feature instead of
// aborting startup: no Redis means in-memory session state, no Postgres
// means fallback-logged checkouts and unavailable accounts, no Kafka means
// no events.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/NaumanGems/Nauman-gems/internal/auth"
	"github.com/NaumanGems/Nauman-gems/internal/catalog"
	"github.com/NaumanGems/Nauman-gems/internal/config"
	"github.com/NaumanGems/Nauman-gems/internal/event"
	handler "github.com/NaumanGems/Nauman-gems/internal/handler/http"
	"github.com/NaumanGems/Nauman-gems/internal/notify"
	"github.com/NaumanGems/Nauman-gems/internal/storage"
	memorykv "github.com/NaumanGems/Nauman-gems/internal/storage/memory"
	rediskv "github.com/NaumanGems/Nauman-gems/internal/storage/redis"
	"github.com/NaumanGems/Nauman-gems/internal/store"
	"github.com/NaumanGems/Nauman-gems/internal/submit"
	"github.com/NaumanGems/Nauman-gems/internal/view"
	"github.com/NaumanGems/Nauman-gems/pkg/database"
	"github.com/NaumanGems/Nauman-gems/pkg/health"
	"github.com/NaumanGems/Nauman-gems/pkg/httpclient"
	"github.com/NaumanGems/Nauman-gems/pkg/kafka"
)

// App is the assembled storefront.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	server   *http.Server
	pool     *pgxpool.Pool
	producer *kafka.Producer
}

// New builds the application graph.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) *App {
	app := &App{cfg: cfg, log: log}

	healthHandler := health.NewHandler(2 * time.Second)

	kv := app.connectStorage(ctx, healthHandler)
	sink := app.connectSink(ctx, healthHandler)
	producer := app.connectProducer()

	toasts := notify.NewBuffer()
	catalogSvc := app.buildCatalog(log)

	badge := view.NewBadge()
	cartPanel := view.NewCartPanel()
	wishlistPanel := view.NewWishlistPanel(catalogSvc)
	events := event.NewPublisher(producer, log)

	stores := store.NewManager(kv, toasts, log, badge, cartPanel, wishlistPanel, events)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := auth.NewService(app.userRepository(), tokens, log)

	submissions := submit.NewService(sink, kv, log)

	h := handler.NewHandler(handler.Deps{
		Stores:        stores,
		Catalog:       catalogSvc,
		Auth:          authSvc,
		Submissions:   submissions,
		Toasts:        toasts,
		Badge:         badge,
		CartPanel:     cartPanel,
		WishlistPanel: wishlistPanel,
		Events:        events,
		CheckoutURL:   cfg.CheckoutHandoffURL,
		Log:           log,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handler.NewRouter(h, healthHandler, registry, handler.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		ServiceName:    cfg.ServiceName,
	}, log)

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app
}

func (a *App) connectStorage(ctx context.Context, healthHandler *health.Handler) storage.KV {
	client, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		a.log.Warn("redis unreachable, session state is in-memory only", slog.Any("error", err))
		return memorykv.New()
	}

	kv := rediskv.New(client, a.cfg.StorageTTL)
	healthHandler.Register("redis", kv.Ping)
	return kv
}

func (a *App) connectSink(ctx context.Context, healthHandler *health.Handler) submit.Sink {
	pool, err := database.NewPostgresPool(ctx, database.PostgresConfig{DSN: a.cfg.PostgresDSN})
	if err != nil {
		a.log.Warn("postgres unreachable, checkouts go to the fallback log", slog.Any("error", err))
		return nil
	}

	a.pool = pool
	healthHandler.Register("postgres", pool.Ping)
	return submit.NewPostgresSink(pool)
}

func (a *App) connectProducer() *kafka.Producer {
	if len(a.cfg.KafkaBrokers) == 0 {
		a.log.Info("no kafka brokers configured, events disabled")
		return nil
	}
	a.producer = kafka.NewProducer(kafka.ProducerConfig{Brokers: a.cfg.KafkaBrokers}, a.log)
	return a.producer
}

func (a *App) buildCatalog(log *slog.Logger) *catalog.Service {
	fallback := catalog.NewFallbackProvider(a.cfg.CatalogSeed)

	var remote catalog.Provider
	if a.cfg.CatalogBaseURL != "" {
		client := httpclient.New(httpclient.DefaultConfig())
		breaker := httpclient.NewCircuitBreakerClient(client,
			httpclient.DefaultBreakerConfig("catalog"), log)
		remote = catalog.NewRemoteProvider(a.cfg.CatalogBaseURL, breaker)
	}

	return catalog.NewService(remote, fallback, log)
}

func (a *App) userRepository() auth.UserRepository {
	if a.pool == nil {
		return unavailableUserRepo{}
	}
	return auth.NewRepository(a.pool)
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		a.log.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http shutdown", slog.Any("error", err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Error("close kafka producer", slog.Any("error", err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}

	a.log.Info("shutdown complete")
	return nil
}
