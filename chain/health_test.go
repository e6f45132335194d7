package chain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthTracker_SameInstancePerEndpoint(t *testing.T) {
	tracker := newHealthTracker()

	h1 := tracker.get("https://a.example")
	h2 := tracker.get("https://a.example")
	h3 := tracker.get("https://b.example")

	assert.Same(t, h1, h2)
	assert.NotSame(t, h1, h3)
}

func TestHealthTracker_FailureThreshold(t *testing.T) {
	tracker := newHealthTracker()
	endpoint := "https://a.example"

	for i := 0; i < failureThreshold-1; i++ {
		tracker.recordFailure(endpoint)
		assert.True(t, tracker.isHealthy(endpoint))
	}
	tracker.recordFailure(endpoint)
	assert.False(t, tracker.isHealthy(endpoint))

	tracker.recordSuccess(endpoint)
	assert.True(t, tracker.isHealthy(endpoint))
	assert.Equal(t, int32(0), tracker.get(endpoint).consecutiveFailures.Load())
}

func TestHealthTracker_RecoversAfterTimeout(t *testing.T) {
	tracker := newHealthTracker()
	endpoint := "https://a.example"
	for i := 0; i < failureThreshold; i++ {
		tracker.recordFailure(endpoint)
	}
	assert.False(t, tracker.isHealthy(endpoint))

	tracker.get(endpoint).lastFailureTime.Store(time.Now().Add(-recoveryTimeout - time.Second).UnixNano())
	assert.True(t, tracker.isHealthy(endpoint))
}

func TestHealthTracker_FirstHealthy(t *testing.T) {
	tracker := newHealthTracker()
	endpoints := []string{"https://a.example", "https://b.example", "https://c.example"}
	assert.Equal(t, 0, tracker.firstHealthy(endpoints))

	for i := 0; i < failureThreshold; i++ {
		tracker.recordFailure(endpoints[0])
	}
	assert.Equal(t, 1, tracker.firstHealthy(endpoints))

	for _, e := range endpoints {
		for i := 0; i < failureThreshold; i++ {
			tracker.recordFailure(e)
		}
	}
	assert.Equal(t, 0, tracker.firstHealthy(endpoints))
}

func TestHealthTracker_Concurrent(t *testing.T) {
	tracker := newHealthTracker()
	endpoint := "https://a.example"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.recordFailure(endpoint)
			_ = tracker.isHealthy(endpoint)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), tracker.get(endpoint).consecutiveFailures.Load())
}
