package chain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/getsentry/sentry-go"

	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/sentry_integration"
	"github.com/husky-nft/nftgate/types"
)

const maxRetriesPerURL = 3

// package variables so tests can shorten the schedule
var (
	baseBackoffDelay  = 250 * time.Millisecond
	maxBackoffDelay   = 5 * time.Second
	backoffMultiplier = 2.0
	jitterFactor      = 0.1
)

// requestFunc performs one attempt against a single endpoint.
type requestFunc[T any] func(ctx context.Context, endpoint string) (T, error)

// calculateBackoffDelay returns an exponential delay with +/- jitterFactor jitter,
// never below baseBackoffDelay and never above maxBackoffDelay (before jitter).
func calculateBackoffDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoffDelay
	}

	baseSeconds := baseBackoffDelay.Seconds()
	delaySeconds := baseSeconds * math.Pow(backoffMultiplier, float64(attempt-1))
	if maxSeconds := maxBackoffDelay.Seconds(); delaySeconds > maxSeconds {
		delaySeconds = maxSeconds
	}

	delaySeconds += delaySeconds * jitterFactor * (2*rand.Float64() - 1)
	if delaySeconds < baseSeconds {
		delaySeconds = baseSeconds
	}

	return time.Duration(delaySeconds * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

// executeWithEndpointRotation runs requestFn against endpoints, starting at the
// first healthy one. Each endpoint gets maxRetriesPerURL attempts with backoff
// before the next one is tried. A missing account ends the call immediately.
func executeWithEndpointRotation[T any](
	ctx context.Context,
	health *healthTracker,
	endpoints []string,
	target string,
	requestFn requestFunc[T],
) (T, error) {
	var zero T
	if len(endpoints) == 0 {
		return zero, types.NewConfigError("no rpc endpoints configured", nil)
	}

	start := health.firstHealthy(endpoints)
	var lastErr error

	for i := 0; i < len(endpoints); i++ {
		endpoint := endpoints[(start+i)%len(endpoints)]

		for attempt := 1; attempt <= maxRetriesPerURL; attempt++ {
			if err := ctx.Err(); err != nil {
				return zero, contextError(target, err)
			}

			res, err := requestFn(ctx, endpoint)
			if err == nil {
				health.recordSuccess(endpoint)
				return res, nil
			}
			if errors.Is(err, rpc.ErrNotFound) {
				// the endpoint answered, the account just does not exist
				health.recordSuccess(endpoint)
				return zero, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, contextError(target, ctxErr)
			}

			lastErr = err
			health.recordFailure(endpoint)
			metrics.TrackRetry(target)
			if isRateLimited(err) {
				metrics.TrackRateLimit(target)
			}

			last := i == len(endpoints)-1 && attempt == maxRetriesPerURL
			if !last {
				if err := sleepCtx(ctx, calculateBackoffDelay(attempt)); err != nil {
					return zero, contextError(target, err)
				}
			}
		}
	}

	sentry_integration.CaptureCurrentHubException(
		fmt.Errorf("%s: exhausted all rpc endpoints: %w", target, lastErr),
		sentry.LevelError,
	)

	if isRateLimited(lastErr) {
		return zero, &types.StandardError{
			Type:    types.ErrTypeRateLimit,
			Message: fmt.Sprintf("rate limit exceeded for %s on all endpoints", target),
			Cause:   lastErr,
		}
	}
	return zero, types.NewNetworkError(target, fmt.Errorf("exhausted all endpoints: %w", lastErr))
}

func contextError(target string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &types.StandardError{
			Type:    types.ErrTypeTimeout,
			Message: fmt.Sprintf("%s operation timed out", target),
			Details: map[string]any{"operation": target},
			Cause:   err,
		}
	}
	return err
}
