// Package merge fuses an extractive summary with an abstractive one.
//
// Extractive sentences are literal source sentences and act as anchors.
// Abstractive sentences fill the remaining slots by centrality as long as
// they are not near-duplicates of something already selected.
package merge

import (
	"cmp"
	"slices"
	"strings"

	"github.com/4thel00z/hybridsum/internal/similarity"
	"github.com/4thel00z/hybridsum/internal/textproc"
)

const (
	DefaultRedundancyThreshold     = 0.75
	DefaultMaxAbstractiveSentences = 60
)

type Config struct {
	// RedundancyThreshold is the cosine similarity at or above which a
	// candidate counts as a duplicate of a selected one.
	RedundancyThreshold float64
	// PreferExtractive selects extractive anchors before ranking.
	PreferExtractive bool
	// MaxAbstractiveSentences caps the abstractive sentences in the pool.
	MaxAbstractiveSentences int
	// Stopwords are added to the bilingual base list.
	Stopwords []string
	// Split breaks the abstractive text into sentences. Nil means
	// textproc.SplitSentences.
	Split textproc.Splitter
}

func DefaultConfig() Config {
	return Config{
		RedundancyThreshold:     DefaultRedundancyThreshold,
		PreferExtractive:        true,
		MaxAbstractiveSentences: DefaultMaxAbstractiveSentences,
	}
}

// Candidate is a member of the selection pool.
type Candidate struct {
	Text       string
	Extractive bool
}

// Dedupe trims sentences and drops blanks and exact repeats, keeping the
// first occurrence.
func Dedupe(sentences []string) []string {
	seen := make(map[string]struct{}, len(sentences))
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Pool builds the candidate pool: deduplicated extractive sentences first,
// then abstractive sentences not already present.
func Pool(extractive []string, abstractive string, cfg Config) []Candidate {
	ext := Dedupe(extractive)

	var abs []string
	if strings.TrimSpace(abstractive) != "" {
		split := cfg.Split
		if split == nil {
			split = textproc.SplitSentences
		}
		abs = Dedupe(split(abstractive))
		if cfg.MaxAbstractiveSentences >= 0 && len(abs) > cfg.MaxAbstractiveSentences {
			abs = abs[:cfg.MaxAbstractiveSentences]
		}
	}

	pool := make([]Candidate, 0, len(ext)+len(abs))
	existing := make(map[string]struct{}, len(ext)+len(abs))
	for _, s := range ext {
		pool = append(pool, Candidate{Text: s, Extractive: true})
		existing[s] = struct{}{}
	}
	for _, s := range abs {
		if _, ok := existing[s]; ok {
			continue
		}
		pool = append(pool, Candidate{Text: s})
		existing[s] = struct{}{}
	}
	return pool
}

// Merge returns at most k sentences in selection order.
//
// Without abstractive text the result is the first k deduplicated
// extractive sentences. Otherwise anchors are taken first (when
// PreferExtractive is set), the rest of the pool fills by descending
// centrality, and redundant candidates are skipped unless nothing else is
// left.
func Merge(extractive []string, abstractive string, k int, cfg Config) []string {
	if k <= 0 {
		return []string{}
	}

	if strings.TrimSpace(abstractive) == "" {
		ext := Dedupe(extractive)
		return ext[:min(k, len(ext))]
	}

	pool := Pool(extractive, abstractive, cfg)
	if len(pool) <= k {
		return texts(pool)
	}

	s := newSelector(pool, cfg)
	if cfg.PreferExtractive {
		s.anchors(k)
	}
	ranked := s.ranked()
	s.fill(ranked, k, true)
	s.fill(ranked, k, false)

	out := make([]string, 0, k)
	for _, i := range s.selected {
		out = append(out, pool[i].Text)
	}
	return out[:min(k, len(out))]
}

type selector struct {
	pool       []Candidate
	sim        similarity.Matrix
	centrality []float64
	threshold  float64
	selected   []int
	taken      map[int]struct{}
}

func newSelector(pool []Candidate, cfg Config) *selector {
	vectors, _ := similarity.BuildTFIDF(texts(pool), cfg.Stopwords)
	sim := similarity.CosineMatrix(vectors)
	return &selector{
		pool:       pool,
		sim:        sim,
		centrality: sim.RowSums(),
		threshold:  cfg.RedundancyThreshold,
		taken:      make(map[int]struct{}, len(pool)),
	}
}

func (s *selector) redundant(i int) bool {
	for _, j := range s.selected {
		if s.sim[i][j] >= s.threshold {
			return true
		}
	}
	return false
}

func (s *selector) take(i int) {
	s.selected = append(s.selected, i)
	s.taken[i] = struct{}{}
}

func (s *selector) anchors(k int) {
	for i, c := range s.pool {
		if len(s.selected) >= k {
			return
		}
		if !c.Extractive || s.redundant(i) {
			continue
		}
		s.take(i)
	}
}

// ranked orders pool indices by centrality descending, pool index ascending.
func (s *selector) ranked() []int {
	order := make([]int, len(s.pool))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(s.centrality[b], s.centrality[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

func (s *selector) fill(ranked []int, k int, checkRedundancy bool) {
	for _, i := range ranked {
		if len(s.selected) >= k {
			return
		}
		if _, ok := s.taken[i]; ok {
			continue
		}
		if checkRedundancy && s.redundant(i) {
			continue
		}
		s.take(i)
	}
}

func texts(pool []Candidate) []string {
	out := make([]string, len(pool))
	for i, c := range pool {
		out[i] = c.Text
	}
	return out
}
