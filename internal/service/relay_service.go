package service

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
	"carprice/internal/metrics"
)

// maxUpstreamBody caps how much of an upstream response the relay will buffer.
const maxUpstreamBody = 10 << 20

// RelayResponse is a successful upstream response, mirrored to the caller.
type RelayResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// RelayService forwards prediction requests to the fixed upstream predictor.
type RelayService interface {
	Forward(ctx context.Context, body []byte) (*RelayResponse, error)
	Ping(ctx context.Context) error
}

type relayService struct {
	baseURL string
	client  *http.Client
	metrics *metrics.PredictionMetrics
}

// NewRelayService creates a RelayService for the configured upstream. m may be nil.
func NewRelayService(cfg config.UpstreamConfig, m *metrics.PredictionMetrics) RelayService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &relayService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// Forward validates that body is JSON and posts it unmodified to
// <upstream>/predict. A non-2xx status, a transport failure, or a non-JSON
// success body returns an error; the caller never sees a partial response.
func (s *relayService) Forward(ctx context.Context, body []byte) (*RelayResponse, error) {
	if !json.Valid(body) {
		s.metrics.ObserveRelay(metrics.OutcomeInvalid, 0)
		return nil, domain.ErrInvalidJSON
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("relay.Forward: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.ObserveRelay(metrics.OutcomeFailure, time.Since(start).Seconds())
		log.Printf("relay.Forward: upstream request failed: %v", err)
		return nil, &domain.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.ObserveRelay(metrics.OutcomeFailure, elapsed)
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.metrics.ObserveRelay(metrics.OutcomeFailure, elapsed)
		log.Printf("relay.Forward: upstream responded %d: %s", resp.StatusCode, string(respBody))
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		s.metrics.ObserveRelay(metrics.OutcomeFailure, elapsed)
		log.Printf("relay.Forward: upstream returned non-JSON body (status %d)", resp.StatusCode)
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid JSON in upstream response")}
	}

	s.metrics.ObserveRelay(metrics.OutcomeSuccess, elapsed)

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &RelayResponse{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        respBody,
	}, nil
}

// Ping checks the upstream's GET /health endpoint.
func (s *relayService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("relay.Ping: building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamNotReady, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamNotReady, resp.StatusCode)
	}
	return nil
}
