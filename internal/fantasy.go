package internal

import (
	"context"
	"fmt"
	"strings"

	"charm.land/fantasy"
	"charm.land/fantasy/providers/anthropic"
	"charm.land/fantasy/providers/openai"
	"charm.land/fantasy/providers/openrouter"
)

const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
)

const summarySystemPrompt = "You are a helpful assistant that writes concise, faithful summaries. " +
	"Do not invent facts. Keep the summary readable."

type FantasyConfig struct {
	Name        string
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
}

var (
	_ Provider   = (*FantasyProvider)(nil)
	_ Summarizer = (*FantasyProvider)(nil)
)

type FantasyProvider struct {
	model       fantasy.LanguageModel
	name        string
	temperature float64
	maxTokens   int64
}

func NewFantasyProvider(ctx context.Context, cfg FantasyConfig) (*FantasyProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: provider %q has no api key", ErrMissingCredentials, cfg.displayName())
	}

	var provider fantasy.Provider
	var err error

	switch cfg.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		provider, err = openai.New(opts...)

	case ProviderAnthropic:
		opts := []anthropic.Option{anthropic.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		provider, err = anthropic.New(opts...)

	case ProviderOpenRouter:
		provider, err = openrouter.New(openrouter.WithAPIKey(cfg.APIKey))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	model, err := provider.LanguageModel(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("get language model: %w", err)
	}

	return &FantasyProvider{
		model:       model,
		name:        cfg.displayName(),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (c FantasyConfig) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Provider
}

func (p *FantasyProvider) Name() string {
	return p.name
}

func (p *FantasyProvider) Complete(ctx context.Context, prompt string) (string, error) {
	agent := fantasy.NewAgent(p.model)

	result, err := agent.Generate(ctx, fantasy.AgentCall{
		Prompt: prompt,
	})
	if err != nil {
		return "", &TransportError{Provider: p.name, Err: err}
	}

	return result.Response.Content.Text(), nil
}

func (p *FantasyProvider) Summarize(ctx context.Context, text string, targetSentences int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	agent := fantasy.NewAgent(p.model, fantasy.WithSystemPrompt(summarySystemPrompt))

	call := fantasy.AgentCall{
		Prompt:      SummaryPrompt(text, targetSentences),
		Temperature: &p.temperature,
	}
	if p.maxTokens > 0 {
		call.MaxOutputTokens = &p.maxTokens
	}

	result, err := agent.Generate(ctx, call)
	if err != nil {
		return "", &TransportError{Provider: p.name, Err: err}
	}

	return strings.TrimSpace(result.Response.Content.Text()), nil
}

// SummaryPrompt is the user message sent for an abstractive summary.
func SummaryPrompt(text string, targetSentences int) string {
	if targetSentences <= 0 {
		targetSentences = DefaultLLMTargetSentences
	}
	return fmt.Sprintf(
		"Summarize the following text in about %d sentences. "+
			"Preserve key facts and avoid redundancy. "+
			"Return only the summary text.\n\nTEXT:\n%s",
		targetSentences, text,
	)
}
