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

	"github.com/zhouzirui/employees-api/internal/config"
	"github.com/zhouzirui/employees-api/internal/handler"
	"github.com/zhouzirui/employees-api/internal/handler/docs"
	"github.com/zhouzirui/employees-api/internal/logging"
	"github.com/zhouzirui/employees-api/internal/model/employee"
	"github.com/zhouzirui/employees-api/internal/openapi"
	"github.com/zhouzirui/employees-api/internal/service/events"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// serve loads configuration, wires the store and handlers and blocks until
// ctx is cancelled.
func serve(ctx context.Context) error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		logger.Warn("failed to load .env file, continuing with system environment variables only", "error", envErr)
	}

	var seed []employee.Employee
	if cfg.Store.Seed {
		seed = employee.Seed()
	}
	store := employee.NewMemoryStore(seed)
	logger.Info("employee store initialized", "records", len(seed))

	var hub *events.Hub
	if cfg.Events.Enabled {
		hub = events.NewHub(cfg.Events.Buffer)
		logger.Info("change feed enabled", "buffer", cfg.Events.Buffer)
	} else {
		logger.Info("change feed disabled by configuration")
	}

	doc, err := openapi.Load(ctx)
	if err != nil {
		return err
	}
	docsHandler, err := docs.New(doc)
	if err != nil {
		return err
	}

	router := handler.NewRouter(handler.Options{
		Employees:   store,
		Hub:         hub,
		Docs:        docsHandler,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	return startServer(ctx, newServer(cfg.Server, router, hub, logger), logger)
}

// newServer builds the HTTP server. Change feed streams never finish on
// their own, so the hub is closed as soon as shutdown starts.
func newServer(serverCfg config.ServerConfig, router http.Handler, hub *events.Hub, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          logging.StdLogger(logger, logging.LevelError),
	}
	if hub != nil {
		srv.RegisterOnShutdown(hub.Close)
	}
	return srv
}

func startServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	logger.Info("employees api listening", "addr", srv.Addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr := srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		if shutdownErr != nil {
			return fmt.Errorf("graceful shutdown: %w", shutdownErr)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
