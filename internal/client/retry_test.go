package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(maxAttempts int, slept *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   10 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
}

func TestRetryPolicy_SucceedsFirstAttempt(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(3, &slept)

	calls := 0
	err := p.Do(context.Background(), "fetch", func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
}

func TestRetryPolicy_ExponentialBackoff(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(3, &slept)

	calls := 0
	err := p.Do(context.Background(), "fetch", func() error {
		calls++
		if calls < 3 {
			return errors.New("throttled")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second}, slept)
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(3, &slept)

	boom := errors.New("boom")
	calls := 0
	err := p.Do(context.Background(), "fetch", func() error {
		calls++
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_StopsOnCancelledContext(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := p.Do(ctx, "fetch", func() error {
		calls++
		return errors.New("transient")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
