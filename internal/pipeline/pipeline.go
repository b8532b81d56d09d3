package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/observability"
)

// Prober is implemented by predictors backed by a remote dependency that
// can be health-checked.
type Prober interface {
	Probe(ctx context.Context) error
}

// Error reasons recorded on the prediction_errors_total metric.
const (
	ReasonInvalidInput = "invalid_input"
	ReasonInference    = "inference"
)

// Pipeline serves predictions from a loaded predictor, one request at a time
// per caller, recording metrics and logs for each.
type Pipeline struct {
	predictor domain.Predictor
	logger    *slog.Logger
	metrics   *observability.Metrics
	timeout   time.Duration
	ready     atomic.Bool
}

// New creates a Pipeline around an already loaded predictor. A zero timeout
// leaves the request context untouched.
func New(predictor domain.Predictor, logger *slog.Logger, metrics *observability.Metrics, timeout time.Duration) *Pipeline {
	return &Pipeline{
		predictor: predictor,
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,
	}
}

// MarkReady flags the pipeline as serving. Call it once startup checks pass.
func (p *Pipeline) MarkReady() {
	p.ready.Store(true)
	p.metrics.PipelineLoaded.Set(1)
}

// CheckReadiness returns nil once the pipeline is serving and, for remote
// predictors, the backend answers its probe.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	if !p.ready.Load() {
		return errors.New("prediction pipeline is not loaded")
	}
	if pr, ok := p.predictor.(Prober); ok {
		return pr.Probe(ctx)
	}
	return nil
}

// Submit assembles a record from raw form values and predicts it.
func (p *Pipeline) Submit(ctx context.Context, lookup func(key string) string) (domain.Prediction, error) {
	rec, err := domain.ParseFeatureRecord(lookup)
	if err != nil {
		err = &domain.PredictionError{Stage: domain.StageAssemble, Err: err}
		p.recordError(err)
		return domain.Prediction{}, err
	}
	return p.Predict(ctx, rec)
}

// Predict runs rec through the predictor and presents the result.
func (p *Pipeline) Predict(ctx context.Context, rec domain.FeatureRecord) (domain.Prediction, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	pred, err := domain.Invoke(ctx, p.predictor, rec)
	if err != nil {
		p.recordError(err)
		return domain.Prediction{}, err
	}

	p.metrics.Predictions.WithLabelValues(pred.Result.Label).Inc()
	p.metrics.InferenceDuration.Observe(pred.Elapsed.Seconds())
	p.logger.Info("prediction served",
		"code", pred.Result.Code,
		"label", pred.Result.Label,
		"duration", pred.Elapsed,
	)
	if !pred.Result.Known {
		p.logger.Warn("predictor returned a code missing from the label table", "code", pred.Result.Code)
	}
	return pred, nil
}

func (p *Pipeline) recordError(err error) {
	if errors.Is(err, domain.ErrInvalidRecord) {
		p.metrics.PredictionErrors.WithLabelValues(ReasonInvalidInput).Inc()
		p.logger.Debug("rejected feature record", "error", err)
		return
	}
	p.metrics.PredictionErrors.WithLabelValues(ReasonInference).Inc()
	p.logger.Error("prediction failed", "error", err)
}
