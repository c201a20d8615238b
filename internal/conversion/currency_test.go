package conversion

import (
	"context"
	"errors"
	"testing"
	"time"

	"cookncart/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *stubFetcher) FetchRates(_ context.Context) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCurrency("€"))
	assert.Equal(t, "USD", NormalizeCurrency(" $ "))
	assert.Equal(t, "SEK", NormalizeCurrency("KR"))
	assert.Equal(t, "GBP", NormalizeCurrency("gbp"))
	assert.Equal(t, "", NormalizeCurrency(""))
}

func TestRate_StaticTable(t *testing.T) {
	c := NewStaticCurrencyConverter()
	ctx := context.Background()

	assert.Equal(t, 1.0, c.Rate(ctx, "€"))
	assert.Equal(t, 1.0, c.Rate(ctx, "EUR"))
	assert.Equal(t, 1.08, c.Rate(ctx, "$"))
	assert.Equal(t, 11.5, c.Rate(ctx, "sek"))
	assert.Equal(t, 1.0, c.Rate(ctx, "XYZ"), "unknown currency falls back to identity")
}

func TestRate_FetchesOnceAndCaches(t *testing.T) {
	f := &stubFetcher{rates: map[string]float64{"USD": 1.1, "GBP": 0.9}}
	c := NewCurrencyConverter(f, nil, time.Hour)
	ctx := context.Background()

	assert.Equal(t, 1.1, c.Rate(ctx, "USD"))
	assert.Equal(t, 0.9, c.Rate(ctx, "£"))
	assert.Equal(t, 1, f.calls)
}

func TestRate_FetchFailureReturnsIdentity(t *testing.T) {
	f := &stubFetcher{err: errors.New("connection refused")}
	c := NewCurrencyConverter(f, nil, time.Hour)

	before := testutil.ToFloat64(metrics.RateFetchFailures)
	assert.Equal(t, 1.0, c.Rate(context.Background(), "USD"))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateFetchFailures))
}

func TestRate_MissingFromFetchedTable(t *testing.T) {
	f := &stubFetcher{rates: map[string]float64{"USD": 1.1}}
	c := NewCurrencyConverter(f, nil, time.Hour)
	ctx := context.Background()

	assert.Equal(t, 1.0, c.Rate(ctx, "JPY"))
	assert.Equal(t, 1.0, c.Rate(ctx, "¥"))
	assert.Equal(t, 1.1, c.Rate(ctx, "USD"))
	assert.Equal(t, 1, f.calls, "a missing code is cached like any other")
	_, hadJPY := f.rates["JPY"]
	assert.False(t, hadJPY, "fetched table is not modified")
}

func TestMemoryRateCache_PerCodeExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryRateCache()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, map[string]float64{"USD": 1.1}, time.Hour)
	now = now.Add(50 * time.Minute)
	cache.Set(ctx, map[string]float64{"GBP": 0.9}, time.Hour)

	r, ok := cache.Get(ctx, "USD")
	require.True(t, ok)
	assert.Equal(t, 1.1, r)

	now = now.Add(20 * time.Minute)
	_, ok = cache.Get(ctx, "USD")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "GBP")
	assert.True(t, ok)
}

func TestRate_RefetchesAfterTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryRateCache()
	cache.now = func() time.Time { return now }

	f := &stubFetcher{rates: map[string]float64{"USD": 1.1}}
	c := NewCurrencyConverter(f, cache, time.Hour)
	ctx := context.Background()

	require.Equal(t, 1.1, c.Rate(ctx, "USD"))
	now = now.Add(30 * time.Minute)
	f.rates = map[string]float64{"USD": 1.2}
	assert.Equal(t, 1.1, c.Rate(ctx, "USD"))

	now = now.Add(31 * time.Minute)
	assert.Equal(t, 1.2, c.Rate(ctx, "USD"))
	assert.Equal(t, 2, f.calls)
}

func TestMemoryRateCache_EmptyIsMiss(t *testing.T) {
	cache := NewMemoryRateCache()
	_, ok := cache.Get(context.Background(), "USD")
	assert.False(t, ok)
}

func TestMemoryRateCache_UpperCasesCodes(t *testing.T) {
	cache := NewMemoryRateCache()
	cache.Set(context.Background(), map[string]float64{"usd": 1.3}, time.Minute)
	r, ok := cache.Get(context.Background(), "USD")
	require.True(t, ok)
	assert.Equal(t, 1.3, r)
}
