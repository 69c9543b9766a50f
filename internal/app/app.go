package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres"
	subrepo "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/syncdata"
	userrepo "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/apple"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/google"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/config"
	authsvc "github.com/heartmarshall/lingonotes-backend/internal/service/auth"
	subsvc "github.com/heartmarshall/lingonotes-backend/internal/service/subscription"
	syncsvc "github.com/heartmarshall/lingonotes-backend/internal/service/sync"
	translatesvc "github.com/heartmarshall/lingonotes-backend/internal/service/translate"
	"github.com/heartmarshall/lingonotes-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingonotes-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, wires repositories, services and the HTTP layer, and
// serves until ctx is canceled. On cancellation the server drains
// in-flight requests within the configured shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting lingonotes backend",
		slog.String("version", BuildVersion()),
		slog.String("environment", cfg.Environment),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories and transaction manager.
	users := userrepo.New(pool)
	subscriptions := subrepo.New(pool)
	snapshots := syncdata.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Providers.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	googleVerifier := google.NewVerifier(cfg.Auth.GoogleClientID, logger)
	appleVerifier := apple.NewVerifier(cfg.Auth.AppleClientID, logger)
	translator := llm.NewTranslator(cfg.LLM, logger)

	// Services.
	authService := authsvc.NewService(logger, users, googleVerifier, appleVerifier, jwtManager)
	subscriptionService := subsvc.NewService(logger, subscriptions, !cfg.IsProduction())
	syncService := syncsvc.NewService(logger, snapshots, txManager)
	translateService := translatesvc.NewService(logger, translator)

	// HTTP layer.
	router := rest.NewRouter(rest.Handlers{
		Auth:         rest.NewAuthHandler(authService, logger),
		Translate:    rest.NewTranslateHandler(translateService, logger),
		Sync:         rest.NewSyncHandler(syncService, logger),
		Subscription: rest.NewSubscriptionHandler(subscriptionService, logger),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
	}, rest.RouteGuards{
		RequireAuth:    middleware.RequireAuth(authService),
		RequirePremium: middleware.RequirePremium(subscriptionService),
	})

	global := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		global = append(global, limiter.Limit(cfg.RateLimit.PerMinute))
	}

	handler := middleware.Chain(global...)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
