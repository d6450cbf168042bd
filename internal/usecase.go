package internal

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/4thel00z/hybridsum/internal/merge"
	"github.com/4thel00z/hybridsum/internal/metrics"
	"github.com/4thel00z/hybridsum/internal/textrank"
)

// Input/Output types

type SummarizeInput struct {
	Text     string
	Scope    string
	Provider string
	// Configure adjusts the loaded config before validation.
	Configure func(*Config)
	Stats     bool
}

type SummarizeOutput struct {
	*HybridResult
	Metrics *metrics.Report `json:"metrics,omitempty"`
}

type RankInput struct {
	Text      string
	K         int
	Scope     string
	Configure func(*Config)
}

type RankOutput struct {
	Sentences  []string  `json:"sentences"`
	Scores     []float64 `json:"scores"`
	Selected   []int     `json:"selected"`
	Summary    []string  `json:"summary"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
}

type MergeInput struct {
	Extractive  []string
	Abstractive string
	K           int
	Scope       string
	Configure   func(*Config)
}

type ProviderInput struct {
	Name   string
	Scope  string
	Config ProviderConfig
}

// SummarizerFactory builds the abstractive summarizer for a run.
type SummarizerFactory func(ctx context.Context, cfg *Config, provider string, logger *zap.Logger) (Summarizer, error)

// ProviderFactory builds a raw provider for connectivity checks.
type ProviderFactory func(ctx context.Context, cfg FantasyConfig) (Provider, error)

// Use cases

type LoadConfigUseCase struct {
	resolver *ScopeResolver
	getenv   func(string) string
}

func NewLoadConfigUseCase(resolver *ScopeResolver) *LoadConfigUseCase {
	return &LoadConfigUseCase{resolver: resolver, getenv: os.Getenv}
}

// WithGetenv replaces the environment lookup.
func (uc *LoadConfigUseCase) WithGetenv(getenv func(string) string) *LoadConfigUseCase {
	uc.getenv = getenv
	return uc
}

// Execute loads the effective config. An explicit scope is used as is;
// otherwise the first scope in the cascade that has a config file wins.
func (uc *LoadConfigUseCase) Execute(scopeHint string) (*Config, Scope, error) {
	scope := uc.pick(scopeHint)

	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, scope, fmt.Errorf("load config from %s: %w", scope.ConfigPath(), err)
	}
	cfg.ApplyEnv(uc.getenv)
	return cfg, scope, nil
}

func (uc *LoadConfigUseCase) pick(scopeHint string) Scope {
	if scopeHint != "" {
		return uc.resolver.Resolve(scopeHint)
	}
	for _, scope := range uc.resolver.Cascade() {
		if _, err := os.Stat(scope.ConfigPath()); err == nil {
			return scope
		}
	}
	return uc.resolver.Resolve("")
}

func (uc *LoadConfigUseCase) load(scopeHint string, configure func(*Config)) (*Config, error) {
	cfg, _, err := uc.Execute(scopeHint)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		configure(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfiguredSummarizer builds the named provider, or the default one,
// wrapped with retries and pacing from the llm section.
func NewConfiguredSummarizer(ctx context.Context, cfg *Config, provider string, logger *zap.Logger) (Summarizer, error) {
	name, pc, err := cfg.ResolveProvider(provider)
	if err != nil {
		return nil, err
	}

	fp, err := NewFantasyProvider(ctx, FantasyConfig{
		Name:        name,
		Provider:    pc.Type,
		APIKey:      pc.APIKey,
		BaseURL:     pc.BaseURL,
		Model:       pc.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return NewRetryingSummarizer(fp, RetryConfig{
		Timeout:     cfg.LLM.Timeout,
		MaxAttempts: cfg.LLM.MaxAttempts,
		MinInterval: cfg.LLM.MinInterval,
	}, logger), nil
}

type SummarizeUseCase struct {
	loader  *LoadConfigUseCase
	factory SummarizerFactory
	logger  *zap.Logger
}

func NewSummarizeUseCase(loader *LoadConfigUseCase, factory SummarizerFactory, logger *zap.Logger) *SummarizeUseCase {
	if factory == nil {
		factory = NewConfiguredSummarizer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummarizeUseCase{loader: loader, factory: factory, logger: logger}
}

func (uc *SummarizeUseCase) Execute(ctx context.Context, input SummarizeInput) (*SummarizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyDocument
	}

	cfg, err := uc.loader.load(input.Scope, input.Configure)
	if err != nil {
		return nil, err
	}

	hc, err := cfg.Hybrid()
	if err != nil {
		return nil, err
	}

	var summarizer Summarizer
	if hc.Mode != ModeTextRank {
		summarizer, err = uc.factory(ctx, cfg, input.Provider, uc.logger)
		if err != nil {
			if hc.Mode == ModeLLM || hc.Strict {
				return nil, fmt.Errorf("create summarizer: %w", err)
			}
			uc.logger.Warn("abstractive summarizer unavailable", zap.Error(err))
			summarizer = nil
		}
	}

	res, err := NewHybridService(summarizer, uc.logger).Summarize(ctx, input.Text, hc)
	if err != nil {
		return nil, err
	}

	out := &SummarizeOutput{HybridResult: res}
	if input.Stats {
		report := metrics.Evaluate(input.Text, res.Final)
		out.Metrics = &report
	}
	return out, nil
}

type RankUseCase struct {
	loader *LoadConfigUseCase
}

func NewRankUseCase(loader *LoadConfigUseCase) *RankUseCase {
	return &RankUseCase{loader: loader}
}

func (uc *RankUseCase) Execute(input RankInput) (*RankOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyDocument
	}

	cfg, err := uc.loader.load(input.Scope, input.Configure)
	if err != nil {
		return nil, err
	}
	hc, err := cfg.Hybrid()
	if err != nil {
		return nil, err
	}

	k := input.K
	if k == 0 {
		k = cfg.Summary.KExtractive
	}

	sentences := hc.Merge.Split(input.Text)
	r := textrank.Run(sentences, k, hc.Rank)
	return &RankOutput{
		Sentences:  sentences,
		Scores:     r.Scores,
		Selected:   r.Selected,
		Summary:    r.Summary,
		Iterations: r.Iterations,
		Converged:  r.Converged,
	}, nil
}

type MergeUseCase struct {
	loader *LoadConfigUseCase
}

func NewMergeUseCase(loader *LoadConfigUseCase) *MergeUseCase {
	return &MergeUseCase{loader: loader}
}

func (uc *MergeUseCase) Execute(input MergeInput) ([]string, error) {
	cfg, err := uc.loader.load(input.Scope, input.Configure)
	if err != nil {
		return nil, err
	}
	hc, err := cfg.Hybrid()
	if err != nil {
		return nil, err
	}

	k := input.K
	if k == 0 {
		k = cfg.Summary.KFinal
	}
	return merge.Merge(input.Extractive, input.Abstractive, k, hc.Merge), nil
}

type ProviderListUseCase struct {
	resolver *ScopeResolver
}

func NewProviderListUseCase(resolver *ScopeResolver) *ProviderListUseCase {
	return &ProviderListUseCase{resolver: resolver}
}

// ProviderEntry describes a configured provider. API keys are never listed.
type ProviderEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Default bool   `json:"default"`
}

// Execute returns the configured providers sorted by name.
func (uc *ProviderListUseCase) Execute(input ProviderInput) ([]ProviderEntry, error) {
	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, err
	}

	entries := make([]ProviderEntry, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		_, pc, err := cfg.ResolveProvider(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ProviderEntry{
			Name:    name,
			Type:    pc.Type,
			Model:   pc.Model,
			BaseURL: pc.BaseURL,
			Default: name == cfg.DefaultProvider,
		})
	}
	slices.SortFunc(entries, func(a, b ProviderEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

type ProviderAddUseCase struct {
	resolver *ScopeResolver
}

func NewProviderAddUseCase(resolver *ScopeResolver) *ProviderAddUseCase {
	return &ProviderAddUseCase{resolver: resolver}
}

func (uc *ProviderAddUseCase) Execute(input ProviderInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: provider name is empty", ErrInvalidConfig)
	}
	typ := input.Config.Type
	if typ == "" {
		typ = input.Name
	}
	switch typ {
	case ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, typ)
	}

	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	cfg.Providers[input.Name] = input.Config
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = input.Name
	}

	if err := os.MkdirAll(scope.DataPath, 0755); err != nil {
		return fmt.Errorf("create %s: %w", scope.DataPath, err)
	}
	return SaveConfig(scope, cfg)
}

type ProviderRemoveUseCase struct {
	resolver *ScopeResolver
}

func NewProviderRemoveUseCase(resolver *ScopeResolver) *ProviderRemoveUseCase {
	return &ProviderRemoveUseCase{resolver: resolver}
}

func (uc *ProviderRemoveUseCase) Execute(input ProviderInput) error {
	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	if _, ok := cfg.Providers[input.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, input.Name)
	}

	delete(cfg.Providers, input.Name)
	if cfg.DefaultProvider == input.Name {
		cfg.DefaultProvider = ""
	}
	return SaveConfig(scope, cfg)
}

type ProviderSetDefaultUseCase struct {
	resolver *ScopeResolver
}

func NewProviderSetDefaultUseCase(resolver *ScopeResolver) *ProviderSetDefaultUseCase {
	return &ProviderSetDefaultUseCase{resolver: resolver}
}

func (uc *ProviderSetDefaultUseCase) Execute(input ProviderInput) error {
	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	if _, exists := cfg.Providers[input.Name]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, input.Name)
	}

	cfg.DefaultProvider = input.Name
	return SaveConfig(scope, cfg)
}

type ProviderTestUseCase struct {
	resolver *ScopeResolver
	factory  ProviderFactory
}

func NewProviderTestUseCase(resolver *ScopeResolver) *ProviderTestUseCase {
	return &ProviderTestUseCase{
		resolver: resolver,
		factory: func(ctx context.Context, cfg FantasyConfig) (Provider, error) {
			return NewFantasyProvider(ctx, cfg)
		},
	}
}

// WithFactory replaces the provider constructor.
func (uc *ProviderTestUseCase) WithFactory(factory ProviderFactory) *ProviderTestUseCase {
	uc.factory = factory
	return uc
}

func (uc *ProviderTestUseCase) Execute(ctx context.Context, input ProviderInput) error {
	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return err
	}

	name, pc, err := cfg.ResolveProvider(input.Name)
	if err != nil {
		return err
	}

	provider, err := uc.factory(ctx, FantasyConfig{
		Name:     name,
		Provider: pc.Type,
		APIKey:   pc.APIKey,
		BaseURL:  pc.BaseURL,
		Model:    pc.Model,
	})
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	if _, err := provider.Complete(ctx, "Say hello"); err != nil {
		return err
	}
	return nil
}
