package textproc

import "strings"

// Stopwords is a set of lowercase tokens excluded from vectorization.
// Sets built by BuildStopwords are fresh per call and never shared.
type Stopwords map[string]struct{}

// Contains reports whether token is in the set.
func (s Stopwords) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of stopwords in the set.
func (s Stopwords) Len() int {
	return len(s)
}

var persianStopwords = [...]string{
	"و", "یا", "به", "از", "در", "را", "که", "این", "آن", "برای", "با", "تا",
	"است", "بود", "باشد", "می", "شود", "شد", "کن", "کند", "کرد", "کرده",
	"هم", "اما", "اگر", "پس", "بر", "چون", "یک", "نه", "من", "تو", "او", "ما", "شما", "آنها",
}

var englishStopwords = [...]string{
	"the", "a", "an", "and", "or", "to", "of", "in", "on", "for", "with", "as",
	"is", "are", "was", "were", "be", "been", "being", "it", "this", "that",
}

// BuildStopwords returns the bilingual base list merged with extra.
// Extras are trimmed and lowercased; blank extras are ignored.
func BuildStopwords(extra []string) Stopwords {
	sw := make(Stopwords, len(persianStopwords)+len(englishStopwords)+len(extra))
	for _, w := range persianStopwords {
		sw[w] = struct{}{}
	}
	for _, w := range englishStopwords {
		sw[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		sw[w] = struct{}{}
	}
	return sw
}
