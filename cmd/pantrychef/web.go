package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pantrychef/internal/cache"
	"pantrychef/internal/config"
	"pantrychef/internal/history"
	"pantrychef/internal/recipes"
)

func runServer(cfg *config.Config, addr string) error {
	c := cache.MakeCache()
	completer := recipes.NewCompleter(cfg)
	storage := history.NewStorage(cfg.History.StoragePath)

	mux := http.NewServeMux()

	wizard := recipes.NewHandler(cfg, completer, storage, c)
	wizard.Register(mux)

	ro := &readyOnce{}
	ro.Add(storage)
	ro.Add(ReadyFunc(func(ctx context.Context) error {
		_, err := c.Exists(ctx, "ready")
		return err
	}))
	mux.Handle("GET /ready", ro)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: WithMiddleware(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Serving PantryChef", "address", addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server)
	}
}

func gracefulShutdown(svr *http.Server) error {
	// 25 seconds leaves room inside kubernetes' 30 second grace period
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	return nil
}
