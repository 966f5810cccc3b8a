// Package predictor is the HTTP client for the car price prediction API.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"carprice/internal/config"
	"carprice/internal/domain"
)

const predictPath = "/predict"

// Error is returned for every failed prediction call and matches
// domain.ErrPredictionFailed with errors.Is. StatusCode is 0 when no response
// was received.
type Error struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", domain.ErrPredictionFailed, e.StatusCode)
	}
	return domain.ErrPredictionFailed.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrPredictionFailed}
	}
	return []error{domain.ErrPredictionFailed, e.Err}
}

// IsClientError reports whether the predictor rejected the input (4xx).
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Client implements port.Predictor against a base URL exposing POST /predict.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a prediction client from config.
func NewClient(cfg *config.PredictorConfig) *Client {
	return NewClientWithBaseURL(cfg.APIBaseURL, time.Duration(cfg.TimeoutSecs)*time.Second)
}

// NewClientWithBaseURL creates a client for an explicit base URL. A zero
// timeout defaults to 60s.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + predictPath,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the full URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// PredictBatch submits all records in one request and returns one result per
// record, in submission order.
func (c *Client) PredictBatch(ctx context.Context, records []domain.CarRecord) ([]domain.PredictionResult, error) {
	if records == nil {
		records = []domain.CarRecord{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return nil, &Error{Detail: "marshaling request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Detail: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("predictor.Client: calling %s: %v", c.endpoint, err)
		return nil, &Error{Detail: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("predictor.Client: reading response: %v", err)
		return nil, &Error{StatusCode: resp.StatusCode, Detail: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := truncate(string(respBody), 500)
		log.Printf("predictor.Client: status %d for %d records: %s", resp.StatusCode, len(records), detail)
		return nil, &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	var parsed domain.PredictionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Printf("predictor.Client: decoding response: %v", err)
		return nil, &Error{StatusCode: resp.StatusCode, Detail: "decoding response", Err: err}
	}

	if len(parsed.Predictions) != len(records) {
		detail := fmt.Sprintf("expected %d predictions, got %d", len(records), len(parsed.Predictions))
		log.Printf("predictor.Client: %s", detail)
		return nil, &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	return parsed.Predictions, nil
}

// PredictSingle submits one record as a batch of one.
func (c *Client) PredictSingle(ctx context.Context, record domain.CarRecord) (domain.PredictionResult, error) {
	results, err := c.PredictBatch(ctx, []domain.CarRecord{record})
	if err != nil {
		return domain.PredictionResult{}, err
	}
	return results[0], nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
