package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/config"
	"github.com/hongminglow/financas-be/internal/logging"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/server"
	"github.com/hongminglow/financas-be/internal/storage"
	"github.com/hongminglow/financas-be/internal/storage/memory"
	"github.com/hongminglow/financas-be/internal/storage/postgres"
)

func main() {
	envLoaded := loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		logger.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, server.Deps{
		Store:    store,
		Identity: newIdentity(cfg, store),
		Billing:  newBilling(cfg, logger),
		Metrics:  metrics.New(),
		Logger:   logger,
	})

	go func() {
		logger.Info("financas backend listening",
			"addr", cfg.HTTPAddress(),
			"store", cfg.StoreDriver,
			"identity", cfg.IdentityProvider,
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return memory.New(), nil
	}
	pg, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

func newIdentity(cfg config.Config, store storage.Store) auth.Provider {
	if cfg.IdentityProvider == config.IdentityLocal {
		return auth.NewLocalProvider(store, auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL))
	}
	return auth.NewSupabaseProvider(auth.SupabaseConfig{
		URL:            cfg.SupabaseURL,
		AnonKey:        cfg.SupabaseAnonKey,
		ServiceRoleKey: cfg.SupabaseServiceRoleKey,
	})
}

func newBilling(cfg config.Config, logger *slog.Logger) billing.Provider {
	if !cfg.BillingEnabled() {
		logger.Warn("STRIPE_SECRET_KEY not set; billing endpoints are disabled")
		return billing.Disabled{}
	}
	return billing.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
}

func loadLocalEnv() bool {
	return godotenv.Load() == nil
}
