package main

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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendwise/internal/backend"
	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/export"
	spendwiseHttp "github.com/MrJamesThe3rd/spendwise/internal/http"
	"github.com/MrJamesThe3rd/spendwise/internal/http/auth"
	expenseHandler "github.com/MrJamesThe3rd/spendwise/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/spendwise/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendwise/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

// serve runs the API until ctx is done or the listener fails. The store is
// released on every return path.
func serve(ctx context.Context, cfg *config.Config) error {
	res, err := backend.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; every authenticated request will be rejected")
	}

	var (
		expenseService = expense.NewService(res.Store)
		importService  = importer.NewService(expenseService)
		exportService  = export.NewService(expenseService)
	)

	var (
		expenseH = expenseHandler.NewHandler(expenseService)
		importH  = importHandler.NewHandler(importService)
		exportH  = exportHandler.NewHandler(exportService)
	)

	router := spendwiseHttp.New(spendwiseHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Authenticate:   auth.Middleware([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer),
	}, expenseH, importH, exportH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", cfg.App.Port, "backend", cfg.Store.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	<-stopped

	return nil
}
