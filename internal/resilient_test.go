package internal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type flakySummarizer struct {
	calls    atomic.Int32
	failures int32
	err      error
}

func (f *flakySummarizer) Summarize(_ context.Context, _ string, _ int) (string, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return "", f.err
	}
	return "summary", nil
}

func TestRetryingSummarizerRetriesTransportErrors(t *testing.T) {
	next := &flakySummarizer{failures: 2, err: &TransportError{Provider: "p", Err: errors.New("502")}}
	s := NewRetryingSummarizer(next, RetryConfig{MaxAttempts: 3}, zaptest.NewLogger(t))

	out, err := s.Summarize(context.Background(), "text", 3)
	require.NoError(t, err)
	assert.Equal(t, "summary", out)
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestRetryingSummarizerDoesNotRetryConfigErrors(t *testing.T) {
	next := &flakySummarizer{failures: 5, err: ErrMissingCredentials}
	s := NewRetryingSummarizer(next, RetryConfig{MaxAttempts: 3}, nil)

	_, err := s.Summarize(context.Background(), "text", 3)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestRetryingSummarizerGivesUp(t *testing.T) {
	next := &flakySummarizer{failures: 5, err: &TransportError{Provider: "p", Err: errors.New("reset")}}
	s := NewRetryingSummarizer(next, RetryConfig{MaxAttempts: 2}, nil)

	_, err := s.Summarize(context.Background(), "text", 3)
	require.Error(t, err)

	var te *TransportError
	assert.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestRetryingSummarizerAttemptTimeout(t *testing.T) {
	slow := SummarizerFunc(func(ctx context.Context, _ string, _ int) (string, error) {
		<-ctx.Done()
		return "", &TransportError{Provider: "slow", Err: ctx.Err()}
	})
	s := NewRetryingSummarizer(slow, RetryConfig{MaxAttempts: 1, Timeout: 10 * time.Millisecond}, nil)

	_, err := s.Summarize(context.Background(), "text", 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryingSummarizerPacesAttempts(t *testing.T) {
	next := &flakySummarizer{failures: 2, err: &TransportError{Provider: "p", Err: errors.New("busy")}}
	s := NewRetryingSummarizer(next, RetryConfig{MaxAttempts: 3, MinInterval: 30 * time.Millisecond}, nil)

	start := time.Now()
	_, err := s.Summarize(context.Background(), "text", 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestRetryingSummarizerCancelledContext(t *testing.T) {
	next := &flakySummarizer{}
	s := NewRetryingSummarizer(next, RetryConfig{MaxAttempts: 3}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Summarize(ctx, "text", 3)
	assert.Error(t, err)
	assert.Zero(t, next.calls.Load())
}

func TestTransportErrorUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := error(&TransportError{Provider: "openai", Err: base})

	assert.ErrorIs(t, err, base)
	assert.True(t, IsTransient(err))
	assert.False(t, IsTransient(ErrMissingCredentials))
	assert.Contains(t, err.Error(), "openai")
}
