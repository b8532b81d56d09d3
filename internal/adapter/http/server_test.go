package http_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/wildfire-damage-predictor/internal/adapter/http"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/artifact"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/observability"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingSubmitter struct {
	err error
}

func (f *failingSubmitter) Submit(context.Context, func(string) string) (domain.Prediction, error) {
	return domain.Prediction{}, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newDemoServer wires the real pipeline over the demo artifacts.
func newDemoServer(t *testing.T) *httpadapter.Server {
	t.Helper()
	pre, model, err := artifact.WriteDemo(t.TempDir())
	require.NoError(t, err)
	pl, err := artifact.Load(pre, model)
	require.NoError(t, err)

	p := pipeline.New(pl, discardLogger(), observability.NewMetricsForTesting(), 0)
	p.MarkReady()
	return httpadapter.NewServer(":0", p, p, discardLogger())
}

func scenarioForm() url.Values {
	return url.Values{
		domain.AssessedValueKey: {"500000"},
		"structure_category":    {"Single Residence"},
		"roof_construction":     {"Tile"},
		"eaves":                 {"Enclosed"},
		"vent_screen":           {"Screened"},
		"exterior_siding":       {"Stucco/Brick/Cement"},
		"window_pane":           {"Multi Pane"},
		"fence_attached":        {"No Fence"},
	}
}

func postForm(srv http.Handler, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `min="0" max="5000000" step="10000" value="100000"`)
	assert.Equal(t, 7, strings.Count(body, "<select"))
	assert.Equal(t, 7, strings.Count(body, " selected>"))
	assert.Contains(t, body, `<option value="Single Residence" selected>`)
	assert.Contains(t, body, `<option value="No Fence" selected>`)
	assert.Contains(t, body, `<button type="submit">Predict</button>`)
	assert.NotContains(t, body, `id="result"`)
	assert.NotContains(t, body, `id="error"`)
}

func TestUnknownPathIs404(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPredictScenario(t *testing.T) {
	srv := newDemoServer(t)
	rec := postForm(srv, scenarioForm())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Predicted Damage Level: No Damage")
	assert.Contains(t, body, "background-color: #2E8B57")
	// Submitted values are kept selected for the next round.
	assert.Contains(t, body, `<option value="Tile" selected>`)
	assert.Contains(t, body, `value="500000"`)
}

func TestPredictBoundaries(t *testing.T) {
	srv := newDemoServer(t)
	for _, v := range []string{"0", "5000000"} {
		form := scenarioForm()
		form.Set(domain.AssessedValueKey, v)

		rec := postForm(srv, form)
		assert.Equal(t, http.StatusOK, rec.Code, v)
		assert.Contains(t, rec.Body.String(), "Predicted Damage Level:", v)
	}
}

func TestPredictInvalidInput(t *testing.T) {
	srv := newDemoServer(t)

	tests := []struct {
		name, key, value, want string
	}{
		{"above maximum", domain.AssessedValueKey, "5000001", "must be between 0 and 5000000"},
		{"not a number", domain.AssessedValueKey, "abc", "must be a whole number"},
		{"outside domain", "eaves", "Open", "not a valid option"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := scenarioForm()
			form.Set(tt.key, tt.value)

			rec := postForm(srv, form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Invalid input:")
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, `id="result"`)
			// The form is still there to retry.
			assert.Contains(t, body, `<form method="post" action="/predict">`)
		})
	}
}

func TestPredictInferenceFailure(t *testing.T) {
	err := &domain.PredictionError{Stage: domain.StagePredict, Err: errors.New("model exploded")}
	srv := httpadapter.NewServer(":0", &failingSubmitter{err: err}, &mockReadiness{}, discardLogger())

	rec := postForm(srv, scenarioForm())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error during prediction: predict: model exploded")
}

func TestPredictRequiresPost(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", &failingSubmitter{}, &mockReadiness{err: fmt.Errorf("not ready yet")}, discardLogger())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newDemoServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
