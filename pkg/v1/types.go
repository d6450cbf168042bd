package v1

import "context"

// Summarizer produces an abstractive summary of about targetSentences
// sentences.
type Summarizer interface {
	Summarize(ctx context.Context, text string, targetSentences int) (string, error)
}

// Summary is the result of a summarization run.
type Summary struct {
	RunID       string    `json:"run_id"`
	Mode        string    `json:"mode"`
	Sentences   []string  `json:"sentences"`
	Extractive  []string  `json:"extractive"`
	Scores      []float64 `json:"scores"`
	Abstractive string    `json:"abstractive"`
	Final       []string  `json:"final"`
	Degraded    bool      `json:"degraded"`
	Metrics     Metrics   `json:"metrics"`
}

// Metrics describes the final summary.
type Metrics struct {
	WordCount     int     `json:"word_count"`
	SentenceCount int     `json:"sentence_count"`
	Redundancy    float64 `json:"redundancy"`
	Coverage      float64 `json:"coverage"`
}

// Ranking is the TextRank result for a list of sentences.
type Ranking struct {
	Summary    []string  `json:"summary"`
	Scores     []float64 `json:"scores"`
	Selected   []int     `json:"selected"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
}
