package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cucinanostrard/internal/catalog"
	"cucinanostrard/internal/config"
	"cucinanostrard/internal/database"
	"cucinanostrard/internal/gateway"
	"cucinanostrard/internal/handler"
	"cucinanostrard/internal/router"
	"cucinanostrard/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cucinanostrard API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the catalogue store pool. An unreachable store is not
	// fatal; reads degrade to the bundled fallback snapshot.
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := gateway.EnsureSchema(ctx, pool, cfg.Catalog.NotifyChannel); err != nil {
		logger.Warn().Err(err).Msg("could not ensure catalogue schema, continuing with fallback data")
	}

	// Initialize the catalogue sync engine
	productGateway := gateway.NewPostgresGateway(pool, cfg.Catalog.NotifyChannel, logger)
	engine := catalog.NewEngine(productGateway, logger)

	// Initial synchronous loads populate the resident lists before any
	// live channel is established.
	engine.LoadAll(ctx)
	engine.LoadFeatured(ctx)
	if err := engine.Start(ctx); err != nil {
		logger.Warn().Err(err).Msg("live catalogue subscriptions unavailable")
	}
	defer engine.Stop()

	// Initialize session persistence
	if err := os.MkdirAll(filepath.Dir(cfg.Admin.SessionStorePath), 0o755); err != nil {
		return fmt.Errorf("failed to create session store directory: %w", err)
	}
	kv, err := session.NewBoltKV(cfg.Admin.SessionStorePath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer kv.Close()

	sessionStore := session.NewStore(kv, logger)
	manager := session.NewManager(sessionStore, session.SharedSecret(cfg.Admin.Password), cfg.Admin.SessionDuration, logger)
	defer manager.Close()

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(engine, logger)
	sessionHandler := handler.NewSessionHandler(manager, logger)

	// Initialize router
	mux := router.New(productHandler, sessionHandler, manager, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
