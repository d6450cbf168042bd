// Package similarity builds sparse TF-IDF sentence vectors and the cosine
// similarity graph over them.
//
// Vectors are maps from term to weight; the vocabulary is never
// materialized densely. Every reduction over a map runs in sorted key order
// so results are bit-for-bit reproducible across runs.
package similarity

import (
	"math"

	"github.com/4thel00z/hybridsum/internal/textproc"
)

// Vector is a sparse term -> weight map. Weights are non-negative.
type Vector map[string]float64

// BuildTFIDF vectorizes each sentence against the document frequencies of
// the whole slice. extra is merged into the bilingual stopword list, and the
// resulting set is returned alongside the vectors.
//
// idf(t) = ln((1+N)/(1+df(t))) + 1 and weight = raw term count * idf.
// A sentence whose tokens are all filtered out gets an empty Vector.
func BuildTFIDF(sentences []string, extra []string) ([]Vector, textproc.Stopwords) {
	stopwords := textproc.BuildStopwords(extra)
	if len(sentences) == 0 {
		return []Vector{}, stopwords
	}

	docs := make([][]string, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		docs[i] = textproc.TokenizeAndFilter(s, stopwords)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(sentences))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		vec := make(Vector, len(tf))
		for term, count := range tf {
			vec[term] = float64(count) * idf[term]
		}
		vectors[i] = vec
	}
	return vectors, stopwords
}
