package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/4thel00z/hybridsum/internal/merge"
	"github.com/4thel00z/hybridsum/internal/textproc"
	"github.com/4thel00z/hybridsum/internal/textrank"
)

// Summary modes.
const (
	ModeHybrid   = "hybrid"
	ModeTextRank = "textrank"
	ModeLLM      = "llm"
)

type HybridConfig struct {
	Mode               string
	KFinal             int
	KExtractive        int
	LLMTargetSentences int
	// Strict fails the run when the abstractive summarizer fails instead
	// of falling back to the extractive summary.
	Strict bool
	// Split splits the document. Nil means textproc.SplitSentences.
	Split textproc.Splitter
	Rank  textrank.Config
	Merge merge.Config
}

func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		Mode:               ModeHybrid,
		KFinal:             DefaultKFinal,
		KExtractive:        DefaultKExtractive,
		LLMTargetSentences: DefaultLLMTargetSentences,
		Rank:               textrank.DefaultConfig(),
		Merge:              merge.DefaultConfig(),
	}
}

type HybridResult struct {
	RunID       string    `json:"run_id"`
	Mode        string    `json:"mode"`
	Sentences   []string  `json:"sentences"`
	Extractive  []string  `json:"extractive"`
	Scores      []float64 `json:"scores"`
	Abstractive string    `json:"abstractive"`
	Final       []string  `json:"final"`
	// Degraded is set when the abstractive step failed and the final
	// summary is extractive only.
	Degraded   bool `json:"degraded"`
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// HybridService runs the split, rank, summarize and merge pipeline.
type HybridService struct {
	summarizer Summarizer
	logger     *zap.Logger
}

// NewHybridService accepts a nil summarizer; hybrid runs then degrade to
// extractive output unless strict.
func NewHybridService(summarizer Summarizer, logger *zap.Logger) *HybridService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridService{summarizer: summarizer, logger: logger}
}

func (s *HybridService) Summarize(ctx context.Context, text string, cfg HybridConfig) (*HybridResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeHybrid
	}
	split := cfg.Split
	if split == nil {
		split = textproc.SplitSentences
	}
	if cfg.Merge.Split == nil {
		cfg.Merge.Split = split
	}

	res := &HybridResult{
		RunID:      uuid.NewString(),
		Mode:       cfg.Mode,
		Sentences:  []string{},
		Extractive: []string{},
		Scores:     []float64{},
		Final:      []string{},
		Converged:  true,
	}
	log := s.logger.With(zap.String("run_id", res.RunID), zap.String("mode", cfg.Mode))

	text = strings.TrimSpace(text)
	if text == "" {
		log.Debug("empty document")
		return res, nil
	}

	res.Sentences = append(res.Sentences, split(text)...)
	if len(res.Sentences) == 0 {
		log.Debug("no sentences")
		return res, nil
	}
	log.Debug("document split", zap.Int("sentences", len(res.Sentences)))

	var err error
	switch cfg.Mode {
	case ModeTextRank:
		s.rank(res, cfg.KFinal, cfg.Rank)
		res.Final = res.Extractive
	case ModeLLM:
		err = s.runLLM(ctx, res, text, cfg)
	case ModeHybrid:
		err = s.runHybrid(ctx, log, res, text, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
	if err != nil {
		return nil, err
	}

	log.Info("summary ready",
		zap.Int("extractive", len(res.Extractive)),
		zap.Int("final", len(res.Final)),
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Bool("degraded", res.Degraded),
	)
	return res, nil
}

func (s *HybridService) rank(res *HybridResult, k int, cfg textrank.Config) {
	r := textrank.Run(res.Sentences, k, cfg)
	res.Extractive = r.Summary
	res.Scores = r.Scores
	res.Iterations = r.Iterations
	res.Converged = r.Converged
}

func (s *HybridService) runLLM(ctx context.Context, res *HybridResult, text string, cfg HybridConfig) error {
	if s.summarizer == nil {
		return ErrNoSummarizer
	}
	abs, err := s.summarizer.Summarize(ctx, text, cfg.LLMTargetSentences)
	if err != nil {
		return fmt.Errorf("abstractive summary: %w", err)
	}
	res.Abstractive = abs
	res.Final = merge.Dedupe(cfg.Merge.Split(abs))
	return nil
}

func (s *HybridService) runHybrid(ctx context.Context, log *zap.Logger, res *HybridResult, text string, cfg HybridConfig) error {
	var (
		abstractive string
		absErr      error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.rank(res, cfg.KExtractive, cfg.Rank)
		return nil
	})
	g.Go(func() error {
		if s.summarizer == nil {
			absErr = ErrNoSummarizer
		} else {
			abstractive, absErr = s.summarizer.Summarize(gctx, text, cfg.LLMTargetSentences)
		}
		if absErr != nil && cfg.Strict {
			return fmt.Errorf("abstractive summary: %w", absErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if absErr != nil {
		if errors.Is(absErr, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("abstractive summary unavailable, using extractive summary only", zap.Error(absErr))
		res.Degraded = true
		abstractive = ""
	}

	res.Abstractive = abstractive
	res.Final = merge.Merge(res.Extractive, abstractive, cfg.KFinal, cfg.Merge)
	return nil
}
