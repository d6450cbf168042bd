package textproc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter modes accepted by NewSplitter.
const (
	SplitterHeuristic = "heuristic"
	SplitterPunkt     = "punkt"
)

var ErrUnknownSplitter = errors.New("unknown sentence splitter")

// sentenceBreak matches newline runs and runs of terminal punctuation for
// both Latin and Arabic-script text (؟ is the Arabic question mark, ؛ the
// Arabic semicolon).
var sentenceBreak = regexp.MustCompile(`(?:\r?\n)+|[.!؟?؛;]+`)

// Sentence is a split sentence with its position in the source document.
// Length is the rune count of Text and only serves as the last tie-breaker.
type Sentence struct {
	Index  int
	Text   string
	Length int
}

// NewSentences wraps texts into Sentences numbered in source order.
func NewSentences(texts []string) []Sentence {
	out := make([]Sentence, len(texts))
	for i, t := range texts {
		out[i] = Sentence{Index: i, Text: t, Length: utf8.RuneCountInString(t)}
	}
	return out
}

// SplitSentences splits text on newlines and terminal punctuation.
// The delimiters are dropped; parts are trimmed and empty parts skipped.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := sentenceBreak.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Splitter splits a document into trimmed, non-empty sentences.
type Splitter func(text string) []string

// NewSplitter returns the splitter registered under mode. An empty mode
// selects the heuristic splitter.
func NewSplitter(mode string) (Splitter, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", SplitterHeuristic:
		return SplitSentences, nil
	case SplitterPunkt:
		tok, err := punktTokenizer()
		if err != nil {
			return nil, err
		}
		return func(text string) []string {
			return splitPunkt(tok, text)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitter, mode)
	}
}

var (
	punktOnce sync.Once
	punkt     *sentences.DefaultSentenceTokenizer
	punktErr  error
)

func punktTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	punktOnce.Do(func() {
		punkt, punktErr = english.NewSentenceTokenizer(nil)
		if punktErr != nil {
			punktErr = fmt.Errorf("load punkt model: %w", punktErr)
		}
	})
	return punkt, punktErr
}

// splitPunkt tokenizes with the English Punkt model and then applies the
// newline rule, since Punkt keeps line breaks inside a sentence.
func splitPunkt(tok *sentences.DefaultSentenceTokenizer, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, s := range tok.Tokenize(text) {
		for _, line := range strings.Split(s.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			out = append(out, line)
		}
	}
	return out
}
