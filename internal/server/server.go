package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/config"
	"github.com/hongminglow/financas-be/internal/http/handlers"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/middleware"
	"github.com/hongminglow/financas-be/internal/service"
	"github.com/hongminglow/financas-be/internal/storage"
)

// Deps are the collaborators built once at start-up and shared by every
// request.
type Deps struct {
	Store    storage.Store
	Identity auth.Provider
	Billing  billing.Provider
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError),
	}
	return &Server{inner: httpServer}
}

// NewHandler builds the full middleware chain around the routes.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	logger := deps.Logger
	failures := handlers.NewFailures(logger, cfg.ExposeUpstreamErrors)
	gate := middleware.NewGate(deps.Identity, logger)

	records := service.NewRecords(deps.Store, deps.Metrics, logger)
	accounts := service.NewAccounts(deps.Identity, deps.Store, logger)
	subscriptions := service.NewSubscriptions(deps.Store, deps.Billing, service.SubscriptionConfig{
		PriceID:     cfg.StripePriceID,
		FrontendURL: cfg.FrontendURL,
		TrialDays:   cfg.TrialDays,
	}, deps.Metrics, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.Store).Register(mux)
	handlers.MetaHandler{}.Register(mux)
	handlers.NewAuthHandler(accounts, failures).Register(mux)
	handlers.NewRecordsHandler(records, failures).Register(mux, gate)
	handlers.NewBillingHandler(subscriptions, failures, logger).Register(mux, gate)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}
	mux.Handle("/", fallback(cfg.StaticDir))

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, middleware.Metrics(deps.Metrics, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
