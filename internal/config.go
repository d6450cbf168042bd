package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/4thel00z/hybridsum/internal/merge"
	"github.com/4thel00z/hybridsum/internal/textproc"
	"github.com/4thel00z/hybridsum/internal/textrank"
)

const (
	DefaultKFinal             = 5
	DefaultKExtractive        = 5
	DefaultLLMTargetSentences = 5
)

// Environment variables that override the configured provider.
const (
	EnvProvider     = "HSUM_PROVIDER"
	EnvProviderType = "HSUM_PROVIDER_TYPE"
	EnvAPIKey       = "HSUM_API_KEY"
	EnvBaseURL      = "HSUM_BASE_URL"
	EnvModel        = "HSUM_MODEL"
)

type SummaryConfig struct {
	Mode               string   `yaml:"mode"`
	KFinal             int      `yaml:"k_final"`
	KExtractive        int      `yaml:"k_extractive"`
	LLMTargetSentences int      `yaml:"llm_target_sentences"`
	Splitter           string   `yaml:"splitter"`
	Stopwords          []string `yaml:"stopwords,omitempty"`
	Strict             bool     `yaml:"strict"`
}

type TextRankConfig struct {
	Damping       float64 `yaml:"damping"`
	MaxIter       int     `yaml:"max_iter"`
	Eps           float64 `yaml:"eps"`
	EdgeThreshold float64 `yaml:"edge_threshold"`
}

type MergeConfig struct {
	RedundancyThreshold     float64 `yaml:"redundancy_threshold"`
	PreferExtractive        bool    `yaml:"prefer_extractive"`
	MaxAbstractiveSentences int     `yaml:"max_abstractive_sentences"`
}

type LLMConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	MinInterval time.Duration `yaml:"min_interval"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int64         `yaml:"max_tokens"`
}

type ProviderConfig struct {
	// Type selects the backend (openai, anthropic, openrouter). Empty means
	// the provider name is the type.
	Type    string `yaml:"type,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
}

type Config struct {
	Summary         SummaryConfig             `yaml:"summary"`
	TextRank        TextRankConfig            `yaml:"textrank"`
	Merge           MergeConfig               `yaml:"merge"`
	LLM             LLMConfig                 `yaml:"llm"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Summary: SummaryConfig{
			Mode:               ModeHybrid,
			KFinal:             DefaultKFinal,
			KExtractive:        DefaultKExtractive,
			LLMTargetSentences: DefaultLLMTargetSentences,
			Splitter:           textproc.SplitterHeuristic,
		},
		TextRank: TextRankConfig{
			Damping: textrank.DefaultDamping,
			MaxIter: textrank.DefaultMaxIter,
			Eps:     textrank.DefaultEps,
		},
		Merge: MergeConfig{
			RedundancyThreshold:     merge.DefaultRedundancyThreshold,
			PreferExtractive:        true,
			MaxAbstractiveSentences: merge.DefaultMaxAbstractiveSentences,
		},
		LLM: LLMConfig{
			Timeout:     60 * time.Second,
			MaxAttempts: 3,
			MinInterval: 500 * time.Millisecond,
			Temperature: 0.2,
			MaxTokens:   250,
		},
		Providers: make(map[string]ProviderConfig),
	}
}

// LoadConfig reads the scope's config file. Keys missing from the file
// keep their default values; a missing file yields DefaultConfig.
func LoadConfig(scope Scope) (*Config, error) {
	path := scope.ConfigPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return cfg, nil
}

func SaveConfig(scope Scope, cfg *Config) error {
	path := scope.ConfigPath()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// LoadEnvFiles loads dotenv files into the process environment. Files that
// do not exist are skipped and variables already set are kept.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays HSUM_* variables on the default provider. getenv is
// usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if name := strings.TrimSpace(getenv(EnvProvider)); name != "" {
		c.DefaultProvider = name
	}

	typ := strings.TrimSpace(getenv(EnvProviderType))
	key := strings.TrimSpace(getenv(EnvAPIKey))
	baseURL := strings.TrimSpace(getenv(EnvBaseURL))
	model := strings.TrimSpace(getenv(EnvModel))
	if typ == "" && key == "" && baseURL == "" && model == "" {
		return
	}

	if c.DefaultProvider == "" {
		c.DefaultProvider = ProviderOpenAI
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}

	p := c.Providers[c.DefaultProvider]
	if typ != "" {
		p.Type = typ
	}
	if key != "" {
		p.APIKey = key
	}
	if baseURL != "" {
		p.BaseURL = baseURL
	}
	if model != "" {
		p.Model = model
	}
	c.Providers[c.DefaultProvider] = p
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch c.Summary.Mode {
	case ModeHybrid, ModeTextRank, ModeLLM:
	default:
		fail("summary.mode %q is not one of hybrid, textrank, llm", c.Summary.Mode)
	}
	if c.Summary.KFinal < 0 {
		fail("summary.k_final must not be negative")
	}
	if c.Summary.KExtractive < 0 {
		fail("summary.k_extractive must not be negative")
	}
	if c.Summary.LLMTargetSentences < 0 {
		fail("summary.llm_target_sentences must not be negative")
	}
	if _, err := textproc.NewSplitter(c.Summary.Splitter); err != nil {
		fail("summary.splitter: %v", err)
	}

	if c.TextRank.Damping < 0 || c.TextRank.Damping >= 1 {
		fail("textrank.damping %v outside [0,1)", c.TextRank.Damping)
	}
	if c.TextRank.MaxIter < 1 {
		fail("textrank.max_iter must be at least 1")
	}
	if c.TextRank.Eps <= 0 {
		fail("textrank.eps must be positive")
	}

	if c.Merge.RedundancyThreshold <= 0 || c.Merge.RedundancyThreshold > 1 {
		fail("merge.redundancy_threshold %v outside (0,1]", c.Merge.RedundancyThreshold)
	}
	if c.Merge.MaxAbstractiveSentences < 0 {
		fail("merge.max_abstractive_sentences must not be negative")
	}

	if c.LLM.MaxAttempts < 1 {
		fail("llm.max_attempts must be at least 1")
	}
	if c.LLM.Timeout < 0 || c.LLM.MinInterval < 0 {
		fail("llm durations must not be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ResolveProvider returns the backend type and settings for name, or for
// the default provider when name is empty.
func (c *Config) ResolveProvider(name string) (string, ProviderConfig, error) {
	if name == "" {
		name = c.DefaultProvider
	}
	if name == "" {
		return "", ProviderConfig{}, ErrNoSummarizer
	}

	p, ok := c.Providers[name]
	if !ok {
		return "", ProviderConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	if p.Type == "" {
		p.Type = name
	}
	return name, p, nil
}

// Hybrid builds the pipeline settings from the config.
func (c *Config) Hybrid() (HybridConfig, error) {
	split, err := textproc.NewSplitter(c.Summary.Splitter)
	if err != nil {
		return HybridConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return HybridConfig{
		Mode:               c.Summary.Mode,
		KFinal:             c.Summary.KFinal,
		KExtractive:        c.Summary.KExtractive,
		LLMTargetSentences: c.Summary.LLMTargetSentences,
		Strict:             c.Summary.Strict,
		Split:              split,
		Rank: textrank.Config{
			Damping:       c.TextRank.Damping,
			MaxIter:       c.TextRank.MaxIter,
			Eps:           c.TextRank.Eps,
			EdgeThreshold: c.TextRank.EdgeThreshold,
			Stopwords:     c.Summary.Stopwords,
		},
		Merge: merge.Config{
			RedundancyThreshold:     c.Merge.RedundancyThreshold,
			PreferExtractive:        c.Merge.PreferExtractive,
			MaxAbstractiveSentences: c.Merge.MaxAbstractiveSentences,
			Stopwords:               c.Summary.Stopwords,
			Split:                   split,
		},
	}, nil
}
