package conversion

import (
	"context"
	"strings"
	"sync"
	"time"
)

type cachedRate struct {
	rate    float64
	expires time.Time
}

// MemoryRateCache keeps rates in process memory, each code with its own expiry.
type MemoryRateCache struct {
	mu    sync.Mutex
	rates map[string]cachedRate
	now   func() time.Time
}

func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{rates: map[string]cachedRate{}, now: time.Now}
}

func (m *MemoryRateCache) Get(_ context.Context, code string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rates[strings.ToUpper(code)]
	if !ok || m.now().After(c.expires) {
		return 0, false
	}
	return c.rate, true
}

// Set stores every code in rates; codes not in rates keep their own expiry.
func (m *MemoryRateCache) Set(_ context.Context, rates map[string]float64, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires := m.now().Add(ttl)
	for code, r := range rates {
		m.rates[strings.ToUpper(code)] = cachedRate{rate: r, expires: expires}
	}
}
