package rubric

import (
	"sort"
	"strings"
)

// defaultBannedWords are terms that make a requirement untestable on their own.
// "secure" is listed here and also checked by the security-control rule.
var defaultBannedWords = []string{
	"fast", "robust", "user friendly", "user-friendly", "scalable", "reliable", "soon",
	"optimize", "best effort", "best-effort", "state of the art", "state-of-the-art",
	"easy", "simple", "intuitive", "secure",
}

// DefaultBannedWords returns a copy of the built-in vague term list
func DefaultBannedWords() []string {
	words := make([]string, len(defaultBannedWords))
	copy(words, defaultBannedWords)
	return words
}

// VagueTerms returns the banned terms found in text, sorted.
// Matching is a case-insensitive substring test, so "fast" also hits
// "breakfast". That over-match is accepted in exchange for never missing an
// exact occurrence.
func VagueTerms(text string, banned []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var hits []string

	for _, word := range banned {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		if strings.Contains(lower, w) {
			hits = append(hits, w)
		}
	}

	sort.Strings(hits)
	return hits
}
