package gateway

import (
	"net/http"
	"sync"
	"time"
)

const availabilityCacheTTL = 5 * time.Second

func NewAvailabilityChecker(probeURL string) *AvailabilityChecker {
	return &AvailabilityChecker{
		probeURL: probeURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// AvailabilityChecker reports whether the gateway is reachable, caching the
// answer briefly so repeated checkout attempts don't re-probe every time.
// Idempotent: concurrent callers share one cached result.
type AvailabilityChecker struct {
	probeURL string
	client   *http.Client

	mu        sync.Mutex
	available bool
	lastCheck time.Time
}

func (a *AvailabilityChecker) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	if a.lastCheck.IsZero() || now.Sub(a.lastCheck) > availabilityCacheTTL {
		a.available = a.probe()
		a.lastCheck = now
	}
	return a.available
}

func (a *AvailabilityChecker) probe() bool {
	resp, err := a.client.Get(a.probeURL)
	if err != nil {
		return false
	}
	resp.Body.Close()
	// Any HTTP answer means the gateway is up; auth errors are expected on
	// a bare probe.
	return resp.StatusCode < 500
}
