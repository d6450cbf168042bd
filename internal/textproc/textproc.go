// Package textproc turns raw text into the token and sentence streams the
// ranking core consumes.
//
// Normalization is script-agnostic: text is NFC-composed, lowercased, and
// every rune that is not a word rune is replaced by a space. Word runes are
// letters, numbers, the underscore, and the whole Arabic block
// (U+0600..U+06FF) so Persian diacritics survive. Tokens are the
// whitespace-separated fields of the normalized text.
//
// Filtering drops stopwords and tokens of a single rune.
//
// All functions are pure and safe for concurrent use.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const minTokenRunes = 2

// Normalize lowercases text, replaces non-word runes with spaces and
// collapses whitespace runs into single spaces.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	lower := strings.ToLower(norm.NFC.String(text))
	mapped := strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return ' '
	}, lower)

	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize normalizes text and splits it on whitespace.
// Returns nil when nothing survives normalization.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// Filter removes stopwords and single-rune tokens, keeping order.
// A nil stopword set means the default bilingual list.
func Filter(tokens []string, stopwords Stopwords) []string {
	if stopwords == nil {
		stopwords = BuildStopwords(nil)
	}

	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if stopwords.Contains(t) {
			continue
		}
		if utf8.RuneCountInString(t) < minTokenRunes {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TokenizeAndFilter is Tokenize followed by Filter.
func TokenizeAndFilter(text string, stopwords Stopwords) []string {
	return Filter(Tokenize(text), stopwords)
}

func isWordRune(r rune) bool {
	if r == '_' {
		return true
	}
	if r >= 0x0600 && r <= 0x06FF {
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
