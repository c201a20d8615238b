package conversion

import (
	"context"
	"strings"
	"time"

	"cookncart/internal/metrics"

	"github.com/rs/zerolog/log"
)

// BaseCurrency is the currency product prices are stored in.
const BaseCurrency = "EUR"

// DefaultRateTTL is how long fetched rates stay valid.
const DefaultRateTTL = time.Hour

var currencySymbols = map[string]string{
	"€":  "EUR",
	"$":  "USD",
	"£":  "GBP",
	"kr": "SEK",
	"¥":  "JPY",
}

// staticRates are used when no fetcher is configured. Values are units of the
// target currency per one EUR.
var staticRates = map[string]float64{
	"EUR": 1,
	"USD": 1.08,
	"GBP": 0.85,
	"SEK": 11.5,
	"JPY": 160,
}

// NormalizeCurrency turns a display symbol or ISO code into an upper-case ISO code.
func NormalizeCurrency(currency string) string {
	c := strings.TrimSpace(currency)
	if code, ok := currencySymbols[strings.ToLower(c)]; ok {
		return code
	}
	return strings.ToUpper(c)
}

// RateFetcher loads a full rate table for BaseCurrency from a remote source.
type RateFetcher interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// RateCache stores fetched rates with an expiry.
type RateCache interface {
	Get(ctx context.Context, code string) (float64, bool)
	Set(ctx context.Context, rates map[string]float64, ttl time.Duration)
}

// CurrencyConverter resolves conversion factors from BaseCurrency. It never fails:
// unknown codes and fetch errors both resolve to 1.0.
type CurrencyConverter struct {
	fetcher RateFetcher
	cache   RateCache
	ttl     time.Duration
}

// NewStaticCurrencyConverter uses the built-in rate table only.
func NewStaticCurrencyConverter() *CurrencyConverter {
	return &CurrencyConverter{}
}

// NewCurrencyConverter fetches rates on demand and keeps them in cache for ttl.
// A nil cache gets an in-memory one.
func NewCurrencyConverter(fetcher RateFetcher, cache RateCache, ttl time.Duration) *CurrencyConverter {
	if cache == nil {
		cache = NewMemoryRateCache()
	}
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	return &CurrencyConverter{fetcher: fetcher, cache: cache, ttl: ttl}
}

// Rate returns how many units of target one unit of BaseCurrency buys.
func (c *CurrencyConverter) Rate(ctx context.Context, target string) float64 {
	code := NormalizeCurrency(target)
	if code == "" || code == BaseCurrency {
		return 1
	}

	if c.fetcher == nil {
		if r, ok := staticRates[code]; ok {
			return r
		}
		return 1
	}

	if r, ok := c.cache.Get(ctx, code); ok {
		return r
	}

	rates, err := c.fetcher.FetchRates(ctx)
	if err != nil {
		metrics.RateFetchFailures.Inc()
		log.Warn().Err(err).Str("currency", code).Msg("exchange rate fetch failed, using identity rate")
		return 1
	}

	r, ok := rates[code]
	if !ok || r <= 0 {
		// A code the source lacks is cached as the identity rate until the TTL runs out.
		log.Debug().Str("currency", code).Msg("currency missing from rate table")
		table := make(map[string]float64, len(rates)+1)
		for k, v := range rates {
			table[k] = v
		}
		table[code] = 1
		rates, r = table, 1
	}
	c.cache.Set(ctx, rates, c.ttl)
	return r
}
