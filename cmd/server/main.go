package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekorolev/coinkeeper/internal/server/config"
	"github.com/ekorolev/coinkeeper/internal/server/handlers"
	"github.com/ekorolev/coinkeeper/internal/server/middleware"
	"github.com/ekorolev/coinkeeper/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)
	logger.Info("starting collection server",
		slog.String("env", cfg.Env),
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("version", Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    cfg.JWT.TTL,
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      buildRouter(store, jwtConfig, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.HTTP.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRouter собирает маршруты и middleware сервера
func buildRouter(store *sqlite.Storage, jwtConfig handlers.JWTConfig, logger *slog.Logger) http.Handler {
	authHandler := handlers.NewAuthHandler(store, jwtConfig, logger)
	collectionHandler := handlers.NewCollectionHandler(store, logger)
	healthHandler := handlers.NewHealthHandler(store, logger)

	auth := middleware.AuthMiddleware(logger, jwtConfig)
	// Жесткий лимит на auth эндпоинты против перебора паролей
	authRateLimit := middleware.RateLimitMiddleware(10, time.Minute, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	mux.Handle("POST /api/auth/register", authRateLimit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authRateLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/collection", auth(http.HandlerFunc(collectionHandler.List)))
	mux.Handle("POST /api/collection", auth(http.HandlerFunc(collectionHandler.Add)))
	mux.Handle("PUT /api/collection/{id}", auth(http.HandlerFunc(collectionHandler.Update)))
	mux.Handle("DELETE /api/collection/{catalogCoinID}", auth(http.HandlerFunc(collectionHandler.Delete)))
	mux.Handle("POST /api/collection/sync", auth(http.HandlerFunc(collectionHandler.Sync)))
	mux.Handle("GET /api/collection/stats", auth(http.HandlerFunc(collectionHandler.Stats)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return handler
}

func setupLogger(env string) *slog.Logger {
	var handler slog.Handler
	switch env {
	case "local":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

func printVersion() {
	fmt.Printf("CoinKeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
