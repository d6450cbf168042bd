package v1

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/4thel00z/hybridsum/internal"
	"github.com/4thel00z/hybridsum/internal/textrank"
)

// Client provides programmatic access to the summarizer.
type Client struct {
	loader    *internal.LoadConfigUseCase
	summarize *internal.SummarizeUseCase
	merge     *internal.MergeUseCase
	cfg       *clientConfig
}

// New creates a new Client with the given options. The scoped config is
// loaded and validated once so misconfiguration surfaces here.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	resolver := internal.NewScopeResolver()
	if cfg.home != "" {
		resolver = internal.NewScopeResolverWithHome(cfg.home)
	}
	loader := internal.NewLoadConfigUseCase(resolver)

	c := &Client{loader: loader, cfg: cfg}
	if _, err := c.config(); err != nil {
		return nil, err
	}

	var factory internal.SummarizerFactory
	if cfg.summarizer != nil {
		s := cfg.summarizer
		factory = func(context.Context, *internal.Config, string, *zap.Logger) (internal.Summarizer, error) {
			return s, nil
		}
	}

	c.summarize = internal.NewSummarizeUseCase(loader, factory, cfg.logger)
	c.merge = internal.NewMergeUseCase(loader)
	return c, nil
}

func (c *Client) configure(cfg *internal.Config) {
	if c.cfg.mode != "" {
		cfg.Summary.Mode = c.cfg.mode
	}
	if c.cfg.sentences > 0 {
		cfg.Summary.KFinal = c.cfg.sentences
	}
}

func (c *Client) config() (*internal.Config, error) {
	cfg, _, err := c.loader.Execute(c.cfg.scope)
	if err != nil {
		return nil, err
	}
	c.configure(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Summarize runs the configured pipeline on text.
func (c *Client) Summarize(ctx context.Context, text string) (*Summary, error) {
	out, err := c.summarize.Execute(ctx, internal.SummarizeInput{
		Text:      text,
		Scope:     c.cfg.scope,
		Provider:  c.cfg.provider,
		Configure: c.configure,
		Stats:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	s := &Summary{
		RunID:       out.RunID,
		Mode:        out.Mode,
		Sentences:   out.Sentences,
		Extractive:  out.Extractive,
		Scores:      out.Scores,
		Abstractive: out.Abstractive,
		Final:       out.Final,
		Degraded:    out.Degraded,
	}
	if m := out.Metrics; m != nil {
		s.Metrics = Metrics{
			WordCount:     m.WordCount,
			SentenceCount: m.SentenceCount,
			Redundancy:    m.Redundancy,
			Coverage:      m.Coverage,
		}
	}
	return s, nil
}

// Rank scores already split sentences and selects the top k in document
// order. k == 0 uses the configured extractive length.
func (c *Client) Rank(sentences []string, k int) (*Ranking, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	hc, err := cfg.Hybrid()
	if err != nil {
		return nil, err
	}
	if k == 0 {
		k = cfg.Summary.KExtractive
	}

	r := textrank.Run(sentences, k, hc.Rank)
	return &Ranking{
		Summary:    r.Summary,
		Scores:     r.Scores,
		Selected:   r.Selected,
		Iterations: r.Iterations,
		Converged:  r.Converged,
	}, nil
}

// Merge combines extractive sentences with abstractive text into at most k
// sentences. k == 0 uses the configured final length.
func (c *Client) Merge(extractive []string, abstractive string, k int) ([]string, error) {
	out, err := c.merge.Execute(internal.MergeInput{
		Extractive:  extractive,
		Abstractive: abstractive,
		K:           k,
		Scope:       c.cfg.scope,
		Configure:   c.configure,
	})
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}

// Close flushes the logger.
func (c *Client) Close() error {
	_ = c.cfg.logger.Sync()
	return nil
}
