package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
)

const (
	initialProbeBackoff = 100 * time.Millisecond
	maxProbeBackoff     = 2 * time.Second
)

// Client implements domain.Predictor against a remote model server that
// hosts the same pipeline. Each record is sent as one JSON object keyed by
// training column name.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a model server client. timeout bounds each HTTP call.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Predict posts rec to /predict and returns the single prediction code.
func (c *Client) Predict(ctx context.Context, rec domain.FeatureRecord) (int, error) {
	body, err := json.Marshal(rec.Map())
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("model server error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if out.Prediction == nil {
		return 0, errors.New("model server response has no prediction")
	}
	return *out.Prediction, nil
}

// Probe checks that the model server is up and has its model loaded.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model server probe: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server probe: status %d", resp.StatusCode)
	}
	c.logger.Debug("model server probe ok", "url", c.baseURL)
	return nil
}

// WaitReady probes until the model server answers or ctx is done, backing
// off between attempts. It returns the last probe error on give-up.
func (c *Client) WaitReady(ctx context.Context) error {
	backoff := initialProbeBackoff
	for {
		err := c.Probe(ctx)
		if err == nil {
			return nil
		}
		c.logger.Warn("model server not ready", "url", c.baseURL, "error", err, "retry_in", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			return err
		}
		backoff = retry.NextBackoff(backoff, maxProbeBackoff)
	}
}

// response is the model server's reply. Prediction is a pointer so an
// absent field is told apart from class 0.
type response struct {
	Prediction *int `json:"prediction"`
}
