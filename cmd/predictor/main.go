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

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	httpadapter "github.com/couchcryptid/wildfire-damage-predictor/internal/adapter/http"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/adapter/modelserver"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/artifact"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/config"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/observability"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, metrics); err != nil {
		logger.Error("predictor stopped", "error", err)
		os.Exit(1)
	}
}

// newLogger installs the process-wide structured logger.
func newLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

// run loads the predictor and serves the form until ctx is cancelled. A
// predictor that cannot be loaded is returned as an error before anything
// is served.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	predictor, err := loadPredictor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(predictor, logger, metrics, cfg.PredictTimeout)
	p.MarkReady()

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func loadPredictor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Predictor, error) {
	if cfg.UseModelServer() {
		client := modelserver.NewClient(cfg.ModelServerURL, cfg.PredictTimeout, logger)

		probeCtx, cancel := context.WithTimeout(ctx, cfg.PredictTimeout)
		defer cancel()
		if err := client.WaitReady(probeCtx); err != nil {
			return nil, fmt.Errorf("model server unavailable: %w", err)
		}
		logger.Info("using remote model server", "url", cfg.ModelServerURL)
		return client, nil
	}

	pl, err := artifact.Load(cfg.PreprocessorPath, cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load prediction pipeline: %w", err)
	}

	info := pl.Info()
	logger.Info("prediction pipeline loaded",
		"preprocessor", cfg.PreprocessorPath,
		"model", cfg.ModelPath,
		"objective", info.Objective,
		"classes", info.Classes,
		"features", info.Features,
		"trees", info.Trees,
	)
	for _, m := range pl.LabelMismatches(domain.DamageLabels()) {
		logger.Warn("model classes disagree with damage label table", "detail", m)
	}
	return pl, nil
}
