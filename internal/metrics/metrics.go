// Package metrics scores a produced summary against its source.
package metrics

import (
	"strings"

	"github.com/4thel00z/hybridsum/internal/similarity"
	"github.com/4thel00z/hybridsum/internal/textproc"
)

// Report bundles the summary metrics printed by `hsum summarize --stats`.
type Report struct {
	WordCount     int     `json:"word_count"`
	SentenceCount int     `json:"sentence_count"`
	Redundancy    float64 `json:"redundancy"`
	Coverage      float64 `json:"coverage"`
}

// Evaluate computes every metric for summary against source.
func Evaluate(source string, summary []string) Report {
	joined := strings.Join(summary, " ")
	return Report{
		WordCount:     WordCount(joined),
		SentenceCount: SentenceCount(summary),
		Redundancy:    Redundancy(summary),
		Coverage:      Coverage(source, joined),
	}
}

// WordCount counts the tokens of text, stopwords included.
func WordCount(text string) int {
	return len(textproc.Tokenize(text))
}

// SentenceCount counts the non-blank sentences.
func SentenceCount(sentences []string) int {
	n := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// Redundancy is the mean pairwise TF-IDF cosine similarity of sentences.
// Higher means more repetition. Fewer than two sentences score 0.
func Redundancy(sentences []string) float64 {
	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) < 2 {
		return 0
	}

	vectors, _ := similarity.BuildTFIDF(kept, nil)
	m := similarity.CosineMatrix(vectors)

	total, pairs := 0.0, 0
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			total += m[i][j]
			pairs++
		}
	}
	return total / float64(pairs)
}

// Coverage is the share of unique summary tokens that also occur in source.
// An empty summary scores 0.
func Coverage(source, summary string) float64 {
	summ := unique(textproc.Tokenize(summary))
	if len(summ) == 0 {
		return 0
	}
	src := unique(textproc.Tokenize(source))

	overlap := 0
	for tok := range summ {
		if _, ok := src[tok]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(summ))
}

func unique(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
