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
	_ "time/tzdata"

	"github.com/geocoder89/opay/internal/config"
	httpx "github.com/geocoder89/opay/internal/http"
	"github.com/geocoder89/opay/internal/observability"
	"github.com/geocoder89/opay/internal/view"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	log := observability.NewLogger(observability.LogConfig{Env: cfg.Env, File: cfg.LogFile})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("storage init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	deps := httpx.BuildDeps(cfg, store, log)
	router := httpx.NewRouter(log, cfg, deps)

	reaper := view.NewReaper(view.ReaperConfig{
		Interval: time.Minute,
		IdleTTL:  cfg.ViewIdleTTL,
	}, deps.Views, log)

	go func() {
		if err := reaper.Run(ctx); err != nil {
			log.Error("view reaper stopped", "err", err)
		}
	}()

	// server set up; no write timeout because view streams stay open
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// open streams only end once their views are torn down
	srv.RegisterOnShutdown(deps.Views.CloseAll)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		shutdownCtx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
