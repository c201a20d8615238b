package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"usd":1.1,"GBP":0.86}}`))
	}))
	defer srv.Close()

	c := NewRatesClient(srv.URL, "eur", nil)
	rates, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 1.1, "GBP": 0.86}, rates)
}

func TestFetchRates_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRatesClient(srv.URL, "EUR", nil).FetchRates(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestFetchRates_WrongBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	}))
	defer srv.Close()

	_, err := NewRatesClient(srv.URL, "EUR", nil).FetchRates(context.Background())
	assert.ErrorContains(t, err, "expected base EUR")
}

func TestFetchRates_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewRatesClient(srv.URL, "EUR", nil).FetchRates(context.Background())
	assert.ErrorContains(t, err, "decode response")
}

func TestFetchRates_BreakerOpensAfterFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewRatesClient(srv.URL, "EUR", NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2}))
	for i := 0; i < 2; i++ {
		_, err := c.FetchRates(context.Background())
		require.Error(t, err)
	}
	_, err := c.FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, hits)
}
