package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "job-scalper/1.0"

type HTTPConfig struct {
	Timeout time.Duration // zero disables the client timeout
}

// StatusError is returned by Post for any non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Status)
}

type JSONHTTPRequest struct {
	client *http.Client
}

func NewJSONHTTPRequest(config HTTPConfig) *JSONHTTPRequest {
	return &JSONHTTPRequest{
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Post sends payload as a JSON body in a single attempt. On success the caller
// owns the response body; on a non-2xx status the body is closed and a
// *StatusError is returned.
func (s *JSONHTTPRequest) Post(ctx context.Context, url string, payload any, headers http.Header) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}
