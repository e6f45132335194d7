package chain

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/husky-nft/nftgate/metrics"
)

const (
	// consecutive failures before an endpoint is skipped
	failureThreshold = 3
	// how long an unhealthy endpoint is skipped
	recoveryTimeout = 5 * time.Minute
)

type endpointHealth struct {
	consecutiveFailures atomic.Int32
	lastFailureTime     atomic.Int64 // unix nanos
}

// healthTracker is a per-client circuit breaker keyed by endpoint URL.
type healthTracker struct {
	mu        sync.RWMutex
	endpoints map[string]*endpointHealth
}

func newHealthTracker() *healthTracker {
	return &healthTracker{endpoints: make(map[string]*endpointHealth)}
}

func (t *healthTracker) get(endpoint string) *endpointHealth {
	t.mu.RLock()
	h, exists := t.endpoints[endpoint]
	t.mu.RUnlock()
	if exists {
		return h
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if h, exists := t.endpoints[endpoint]; exists {
		return h
	}
	h = &endpointHealth{}
	t.endpoints[endpoint] = h
	return h
}

func (t *healthTracker) recordSuccess(endpoint string) {
	h := t.get(endpoint)
	if h.consecutiveFailures.Swap(0) >= failureThreshold {
		metrics.SetEndpointHealth(endpoint, true)
	}
	h.lastFailureTime.Store(0)
}

func (t *healthTracker) recordFailure(endpoint string) {
	h := t.get(endpoint)
	h.lastFailureTime.Store(time.Now().UnixNano())
	if h.consecutiveFailures.Add(1) == failureThreshold {
		metrics.SetEndpointHealth(endpoint, false)
	}
}

func (t *healthTracker) isHealthy(endpoint string) bool {
	h := t.get(endpoint)
	if h.consecutiveFailures.Load() < failureThreshold {
		return true
	}

	last := h.lastFailureTime.Load()
	if last == 0 {
		return false
	}
	return time.Since(time.Unix(0, last)) >= recoveryTimeout
}

// firstHealthy returns the index of the first healthy endpoint, or 0 if none are.
func (t *healthTracker) firstHealthy(endpoints []string) int {
	for i, endpoint := range endpoints {
		if t.isHealthy(endpoint) {
			return i
		}
	}
	return 0
}
