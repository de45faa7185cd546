package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docoutline/internal/api"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		log.Warn("DOCOUTLINE_API_KEY not set, /api endpoints are unauthenticated")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	metrics := pipeline.NewMetrics()
	proc := pipeline.NewProcessor(pipeline.NewLatencyStats(time.Hour), metrics, log)
	orch := pipeline.NewOrchestrator(cfg, proc, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, metrics, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		orch.Stop()
	}()

	log.Info("starting docoutline",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"max_pages", cfg.MaxPages,
		"heading_levels", cfg.HeadingLevels,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
