// Package textrank ranks sentences with damped PageRank over the TF-IDF
// cosine similarity graph and selects an extractive summary.
package textrank

import (
	"cmp"
	"math"
	"slices"

	"github.com/4thel00z/hybridsum/internal/similarity"
	"github.com/4thel00z/hybridsum/internal/textproc"
)

const (
	DefaultDamping = 0.85
	DefaultMaxIter = 50
	DefaultEps     = 1e-6
)

// Config tunes the ranking loop. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Damping is the probability of following an edge, in [0,1).
	Damping float64
	MaxIter int
	// Eps stops iteration once no score moves by this much or more.
	Eps float64
	// EdgeThreshold drops edges whose weight does not exceed it.
	// Values <= 0 keep every edge.
	EdgeThreshold float64
	// Stopwords are added to the bilingual base list.
	Stopwords []string
}

func DefaultConfig() Config {
	return Config{
		Damping: DefaultDamping,
		MaxIter: DefaultMaxIter,
		Eps:     DefaultEps,
	}
}

// Result is the full outcome of a ranking run.
type Result struct {
	// Summary holds the selected sentences in document order.
	Summary []string
	// Scores is aligned with the input sentences.
	Scores []float64
	// Selected holds the indices of Summary, ascending.
	Selected   []int
	Iterations int
	Converged  bool
}

// Rank returns the k highest ranked sentences in document order and the
// score of every input sentence.
func Rank(sentences []string, k int, cfg Config) ([]string, []float64) {
	res := Run(sentences, k, cfg)
	return res.Summary, res.Scores
}

// Run ranks sentences and reports loop statistics along with the summary.
//
// k <= 0 or no sentences yields an empty result. When k covers every
// sentence, all sentences are returned unchanged with uniform 1/n scores and
// no ranking is done.
func Run(sentences []string, k int, cfg Config) Result {
	n := len(sentences)
	if k <= 0 || n == 0 {
		return Result{Summary: []string{}, Scores: []float64{}, Selected: []int{}, Converged: true}
	}

	if k >= n {
		scores := make([]float64, n)
		selected := make([]int, n)
		for i := range scores {
			scores[i] = 1 / float64(n)
			selected[i] = i
		}
		return Result{
			Summary:   slices.Clone(sentences),
			Scores:    scores,
			Selected:  selected,
			Converged: true,
		}
	}

	vectors, _ := similarity.BuildTFIDF(sentences, cfg.Stopwords)
	weights := similarity.CosineMatrix(vectors).Threshold(cfg.EdgeThreshold)

	scores, iterations, converged := pagerank(weights, cfg)
	selected := selectTop(textproc.NewSentences(sentences), scores, k)

	summary := make([]string, len(selected))
	for i, idx := range selected {
		summary[i] = sentences[idx]
	}

	return Result{
		Summary:    summary,
		Scores:     scores,
		Selected:   selected,
		Iterations: iterations,
		Converged:  converged,
	}
}

// pagerank iterates
//
//	s'[i] = (1-d)/n + d * sum_j (w[j][i]/out[j]) * s[j]
//
// from a uniform start. Nodes without outgoing weight contribute nothing.
func pagerank(weights similarity.Matrix, cfg Config) ([]float64, int, bool) {
	n := weights.Len()
	nf := float64(n)

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / nf
	}

	outgoing := weights.RowSums()
	teleport := (1 - cfg.Damping) / nf

	for iter := 1; iter <= cfg.MaxIter; iter++ {
		next := make([]float64, n)
		maxDelta := 0.0

		for i := range n {
			acc := 0.0
			for j := range n {
				w := weights[j][i]
				if w <= 0 || outgoing[j] <= 0 {
					continue
				}
				acc += (w / outgoing[j]) * scores[j]
			}
			next[i] = teleport + cfg.Damping*acc
			maxDelta = max(maxDelta, math.Abs(next[i]-scores[i]))
		}

		scores = next
		if maxDelta < cfg.Eps {
			return scores, iter, true
		}
	}

	return scores, cfg.MaxIter, false
}

// selectTop orders sentences by score descending, then index ascending, then
// rune length ascending, and returns the indices of the first k sorted back
// into document order. scores is indexed by Sentence.Index.
func selectTop(sentences []textproc.Sentence, scores []float64, k int) []int {
	ranked := slices.Clone(sentences)
	slices.SortStableFunc(ranked, func(a, b textproc.Sentence) int {
		if c := cmp.Compare(scores[b.Index], scores[a.Index]); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Index, b.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Length, b.Length)
	})

	top := make([]int, k)
	for i, s := range ranked[:k] {
		top[i] = s.Index
	}
	slices.Sort(top)
	return top
}
