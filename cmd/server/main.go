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

	"github.com/npatel/finledger/internal/advisor"
	"github.com/npatel/finledger/internal/api"
	"github.com/npatel/finledger/internal/config"
	"github.com/npatel/finledger/internal/storage"
	"github.com/npatel/finledger/internal/storage/postgres"
	"github.com/npatel/finledger/internal/storage/sqlite"
	"github.com/npatel/finledger/internal/store"
	"github.com/npatel/finledger/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "./finledger.yaml"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	var backend storage.Store
	switch cfg.StorageDriver {
	case "postgres":
		backend, err = postgres.New(cfg.PostgresDSN)
	default:
		backend, err = sqlite.New(cfg.SQLitePath)
	}
	if err != nil {
		slog.Error("failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("storage initialized", "driver", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, backend, cfg.DebounceDelay)
	if err != nil {
		slog.Error("failed to load aggregates", "error", err)
		backend.Close()
		os.Exit(1)
	}
	defer st.Close()

	// Catch up recurring templates and reminders that came due while the
	// process was down, then keep running passes on the scheduler interval.
	runPasses(st)
	go func() {
		ticker := time.NewTicker(cfg.SchedulerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runPasses(st)
			}
		}
	}()

	var adv advisor.Advisor
	if cfg.AdvisorEndpoint != "" {
		adv = advisor.NewHTTPAdvisor(cfg.AdvisorEndpoint, cfg.AdvisorAPIKey, cfg.AdvisorTimeout)
	} else {
		slog.Warn("no advisor endpoint configured, /advisor will answer with the fallback message")
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewServer(st, adv).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "address", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func runPasses(st *store.Store) {
	now := time.Now()
	if n := st.RunRecurringPass(now); n > 0 {
		slog.Info("recurring pass materialized transactions", "count", n)
	}
	if n := st.RunReminderPass(now); n > 0 {
		slog.Info("reminder pass emitted notifications", "count", n)
	}
}
