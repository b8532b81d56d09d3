package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Predictor turns a feature record into a damage code. Implementations are
// loaded once and must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, rec FeatureRecord) (int, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, rec FeatureRecord) (int, error)

func (f PredictorFunc) Predict(ctx context.Context, rec FeatureRecord) (int, error) {
	return f(ctx, rec)
}

// Invocation stages reported by PredictionError.
const (
	StageAssemble = "assemble"
	StagePredict  = "predict"
)

// PredictionError is returned by Invoke for any per-request failure.
type PredictionError struct {
	Stage string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// Prediction is the outcome of one successful inference.
type Prediction struct {
	Record      FeatureRecord
	Result      Result
	PredictedAt time.Time
	Elapsed     time.Duration
}

// Invoke validates rec, runs it through p and presents the code. Errors and
// panics raised by the predictor are returned as *PredictionError.
func Invoke(ctx context.Context, p Predictor, rec FeatureRecord) (Prediction, error) {
	if err := rec.Validate(); err != nil {
		return Prediction{}, &PredictionError{Stage: StageAssemble, Err: err}
	}
	if p == nil {
		return Prediction{}, &PredictionError{Stage: StagePredict, Err: errors.New("no predictor loaded")}
	}

	start := clock.Now()
	code, err := safePredict(ctx, p, rec)
	if err != nil {
		return Prediction{}, &PredictionError{Stage: StagePredict, Err: err}
	}

	return Prediction{
		Record:      rec,
		Result:      Present(code),
		PredictedAt: start,
		Elapsed:     clock.Since(start),
	}, nil
}

func safePredict(ctx context.Context, p Predictor, rec FeatureRecord) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predictor panicked: %v", r)
		}
	}()
	return p.Predict(ctx, rec)
}
