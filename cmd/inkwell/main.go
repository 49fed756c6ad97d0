// Package main is the entry point for the Inkwell API server.
// It loads configuration, prepares the database handle, sets up routing, and
// starts the HTTP server with graceful shutdown support.
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

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/router"
	"inkwell/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// The handle connects on first use. Without a DSN the server still starts
	// and every procedure answers with a configuration error.
	poolOpts := database.DefaultPoolOptions()
	poolOpts.MaxOpenConns = cfg.DBMaxOpenConns
	db := database.NewHandle(cfg.DSN(), poolOpts)
	defer db.Close()

	if db.Configured() {
		if err := prepareDatabase(cfg, db); err != nil {
			slog.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("database not configured, procedures will fail until DATABASE_URL is set")
	}

	// Initialize data stores and handler groups.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)

	r := router.New(
		handlers.NewPosts(postStore),
		handlers.NewCategories(categoryStore),
	)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// prepareDatabase connects eagerly, runs pending migrations and, in
// development, seeds sample data (no-op if data already exists).
func prepareDatabase(cfg *config.Config, h *database.Handle) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := h.DB(ctx)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.IsDev() {
		return database.Seed(ctx, db)
	}
	return nil
}
