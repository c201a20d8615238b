package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RatesResponse is the payload of the exchange-rate endpoint.
type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// RatesClient fetches the rate table for the base currency. Calls go through a
// circuit breaker so an unreachable endpoint does not stall every redraw.
type RatesClient struct {
	url        string
	base       string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewRatesClient(url, base string, breaker *CircuitBreaker) *RatesClient {
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultCBConfig())
	}
	return &RatesClient{
		url:        url,
		base:       strings.ToUpper(base),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		breaker:    breaker,
	}
}

// FetchRates performs GET url?base=<base>.
func (c *RatesClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	var result RatesResponse
	err := c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return fmt.Errorf("rates: create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("base", c.base)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("rates: endpoint unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rates: endpoint returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("rates: decode response: %w", err)
		}
		if result.Base != "" && !strings.EqualFold(result.Base, c.base) {
			return fmt.Errorf("rates: expected base %s, got %s", c.base, result.Base)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(result.Rates))
	for code, r := range result.Rates {
		rates[strings.ToUpper(code)] = r
	}
	return rates, nil
}
