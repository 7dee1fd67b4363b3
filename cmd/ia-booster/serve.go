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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/terra-clan/ia-booster/internal/advisor"
	"github.com/terra-clan/ia-booster/internal/api"
	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/chat"
	"github.com/terra-clan/ia-booster/internal/cleanup"
	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/services"
	"github.com/terra-clan/ia-booster/internal/state"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API serving the analysis, chat, catalog, report and
client state endpoints. Configuration is read from the environment and
from a .env file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting ia-booster",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"state_backend", cfg.State.Backend,
		"llm_configured", cfg.LLM.Configured(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(ctx, 30*time.Second)
	defer initCancel()

	// Client state store
	store, err := state.Open(initCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("state store close error", "error", err)
		}
	}()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	// Catalog, warmed so the readiness report reflects the data file
	loader := catalog.NewLoader(cfg.Catalog.File)
	loader.Load(initCtx)

	provider := llm.NewClient(cfg.LLM, llm.WithRecorder(recorder))
	if !provider.Configured() {
		slog.Warn("OPENROUTER_API_KEY is not set, analyses use the fallback scorer and chat replies fail")
	}

	// Initialize service registry
	registry := services.NewRegistry()
	registry.Register("state", store)
	registry.RegisterOptional("llm", services.NewFuncProvider("openrouter", func(context.Context) error {
		if !provider.Configured() {
			return llm.ErrNotConfigured
		}
		return nil
	}))
	registry.RegisterOptional("catalog", services.NewFuncProvider("catalog", func(context.Context) error {
		if !loader.Loaded() {
			return errors.New("catalog file unavailable, using built-in tools")
		}
		return nil
	}))

	slog.Info("health providers registered", "services", registry.List())

	server := api.NewServer(cfg.Server, api.Dependencies{
		Advisor:  advisor.New(provider, loader, cfg.LLM.AnalysisModel, advisor.WithRecorder(recorder)),
		Chat:     chat.NewService(provider, cfg.LLM.ChatModel, recorder),
		Catalog:  loader,
		State:    state.NewService(store, cfg.State.ChatTTL),
		Registry: registry,
		Recorder: recorder,
		Gatherer: reg,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Cleanup worker
	cleaner := cleanup.NewCleaner(store, cfg.State.JanitorInterval)
	g.Go(func() error {
		cleaner.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gracefully...")

		// Shutdown HTTP server with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("ia-booster stopped with error", "error", err)
		return err
	}

	slog.Info("ia-booster stopped")
	return nil
}
