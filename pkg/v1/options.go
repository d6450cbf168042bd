package v1

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	summarizer Summarizer
	scope      string
	provider   string
	home       string
	mode       string
	sentences  int
	logger     *zap.Logger
}

// WithSummarizer replaces the configured LLM provider.
func WithSummarizer(s Summarizer) Option {
	return func(c *clientConfig) {
		c.summarizer = s
	}
}

// WithScope forces a specific scope (global or project).
func WithScope(scope string) Option {
	return func(c *clientConfig) {
		c.scope = scope
	}
}

// WithProvider selects a configured provider by name instead of the default.
func WithProvider(name string) Option {
	return func(c *clientConfig) {
		c.provider = name
	}
}

// WithHome roots the global scope at dir instead of the user's home.
func WithHome(dir string) Option {
	return func(c *clientConfig) {
		c.home = dir
	}
}

// WithMode overrides the configured summary mode (hybrid, textrank or llm).
func WithMode(mode string) Option {
	return func(c *clientConfig) {
		c.mode = mode
	}
}

// WithSentences overrides the configured final summary length.
func WithSentences(k int) Option {
	return func(c *clientConfig) {
		c.sentences = k
	}
}

// WithLogger sets the logger used for pipeline runs.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
