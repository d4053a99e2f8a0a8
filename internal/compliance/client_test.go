package compliance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://ik.imagekit.io/receipts/r1.png", req.ReceiptImageURL)
		assert.Equal(t, 2500.0, req.PaymentAmount)
		assert.Equal(t, "bank transfer", req.PaymentMethod)
		assert.Equal(t, "0123456789", req.ExpectedAccountNumber)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"isCompliant":     false,
			"violations":      []string{"account number mismatch"},
			"confidenceScore": 0.87,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	verdict, err := client.Analyze(context.Background(), "https://ik.imagekit.io/receipts/r1.png", 2500, "bank transfer", "0123456789")

	require.NoError(t, err)
	assert.False(t, verdict.IsCompliant)
	require.Len(t, verdict.Violations, 1)
	assert.Equal(t, 0.87, verdict.ConfidenceScore)
}

func TestAnalyze_EmptyViolationsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"isCompliant": true, "confidenceScore": 0.99})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	verdict, err := client.Analyze(context.Background(), "https://example.com/r.png", 100, "bank transfer", "1")

	require.NoError(t, err)
	assert.True(t, verdict.IsCompliant)
	assert.NotNil(t, verdict.Violations)
	assert.Empty(t, verdict.Violations)
}

func TestAnalyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	verdict, err := client.Analyze(context.Background(), "https://example.com/r.png", 100, "bank transfer", "1")

	require.Error(t, err)
	assert.Nil(t, verdict)
	assert.ErrorContains(t, err, "503")
}

func TestAnalyze_ConfidenceOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"isCompliant": true, "confidenceScore": 3.5})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	_, err := client.Analyze(context.Background(), "https://example.com/r.png", 100, "bank transfer", "1")

	assert.ErrorContains(t, err, "out of range")
}

func TestAnalyze_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.Analyze(ctx, "https://example.com/r.png", 100, "bank transfer", "1")
		require.Error(t, err)
	}

	// Breaker is open now, the endpoint must not be hit again.
	_, err := client.Analyze(ctx, "https://example.com/r.png", 100, "bank transfer", "1")
	require.Error(t, err)
	assert.Equal(t, 5, hits)
}
