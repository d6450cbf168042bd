package internal

import "context"

// Summarizer produces an abstractive summary of about targetSentences
// sentences. An empty text yields an empty summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string, targetSentences int) (string, error)
}

// Provider is a raw completion endpoint, used to probe connectivity.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, text string, targetSentences int) (string, error)

func (f SummarizerFunc) Summarize(ctx context.Context, text string, targetSentences int) (string, error) {
	return f(ctx, text, targetSentences)
}

// StaticSummarizer always returns Text. Useful as a deterministic stand-in.
type StaticSummarizer struct {
	Text string
	Err  error
}

func (s StaticSummarizer) Summarize(_ context.Context, _ string, _ int) (string, error) {
	return s.Text, s.Err
}
