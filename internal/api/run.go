package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/pptxdom/internal/config"
	"github.com/dgallion1/pptxdom/internal/pipeline"
)

// Run starts the edit pipeline and serves the API until ctx is cancelled,
// then shuts both down.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      NewServer(orch, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting pptxdom", "port", cfg.Port, "workers", cfg.WorkerCount, "metrics", cfg.MetricsEnabled)
	err := httpServer.ListenAndServe()
	orch.Stop()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
