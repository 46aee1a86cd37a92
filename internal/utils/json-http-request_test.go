package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSendsJSON(t *testing.T) {
	var gotMethod, gotContentType, gotCustom string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	req := NewJSONHTTPRequest(HTTPConfig{})
	headers := http.Header{}
	headers.Set("X-Request-ID", "abc")

	resp, err := req.Post(context.Background(), server.URL, map[string]string{"query": "go"}, headers)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc", gotCustom)
	assert.Equal(t, "go", gotBody["query"])
}

func TestPostNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewJSONHTTPRequest(HTTPConfig{}).Post(context.Background(), server.URL, struct{}{}, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestPostTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewJSONHTTPRequest(HTTPConfig{Timeout: 50 * time.Millisecond}).Post(context.Background(), server.URL, struct{}{}, nil)
	require.Error(t, err)
}
