package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() Config {
	return Config{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Multiplier:    2.0,
		JitterEnabled: false,
	}
}

func TestWithBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), testConfig(), zaptest.NewLogger(t), "op", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoffRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), testConfig(), zaptest.NewLogger(t), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoffExhaustsRetries(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := WithBackoff(context.Background(), testConfig(), zaptest.NewLogger(t), "connect", func() error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "connect failed after 3 attempts")
}

func TestWithBackoffHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithBackoff(ctx, testConfig(), zaptest.NewLogger(t), "op", func() error {
		return errors.New("never retried")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoff(t *testing.T) {
	cfg := Config{
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		Multiplier:    2.0,
		JitterEnabled: false,
	}
	assert.Equal(t, time.Second, calculateBackoff(cfg, 1))
	assert.Equal(t, 2*time.Second, calculateBackoff(cfg, 2))
	assert.Equal(t, 4*time.Second, calculateBackoff(cfg, 3))
	assert.Equal(t, 10*time.Second, calculateBackoff(cfg, 10), "delay is capped at MaxDelay")

	cfg.JitterEnabled = true
	d := calculateBackoff(cfg, 2)
	assert.GreaterOrEqual(t, d, 1700*time.Millisecond)
	assert.LessOrEqual(t, d, 2300*time.Millisecond)
}
