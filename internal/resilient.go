package internal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RetryConfig struct {
	// Timeout bounds each attempt. Zero means no per-attempt timeout.
	Timeout     time.Duration
	MaxAttempts int
	// MinInterval is the minimum spacing between attempts.
	MinInterval time.Duration
}

var _ Summarizer = (*RetryingSummarizer)(nil)

// RetryingSummarizer retries transport failures of the wrapped summarizer.
// Configuration errors are returned at once.
type RetryingSummarizer struct {
	next    Summarizer
	cfg     RetryConfig
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewRetryingSummarizer(next Summarizer, cfg RetryConfig, logger *zap.Logger) *RetryingSummarizer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &RetryingSummarizer{
		next:    next,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

func (s *RetryingSummarizer) Summarize(ctx context.Context, text string, targetSentences int) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			if lastErr != nil {
				return "", fmt.Errorf("%w (gave up waiting to retry: %v)", lastErr, err)
			}
			return "", fmt.Errorf("wait for rate limiter: %w", err)
		}

		out, err := s.attempt(ctx, text, targetSentences)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !IsTransient(err) || ctx.Err() != nil {
			return "", err
		}
		s.logger.Warn("summarizer attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.cfg.MaxAttempts),
			zap.Error(err),
		)
	}
	return "", fmt.Errorf("after %d attempts: %w", s.cfg.MaxAttempts, lastErr)
}

func (s *RetryingSummarizer) attempt(ctx context.Context, text string, targetSentences int) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	return s.next.Summarize(ctx, text, targetSentences)
}
