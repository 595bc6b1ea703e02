// Package match implements the acronym-aware fuzzy matching engine: acronym
// expansion, the three similarity scorers, the per-method matcher, and the
// hybrid top-N ranker.
package match

import "strings"

// Expand returns the variation set of text under the given acronym
// dictionary: the unmodified text first, then one variation per word position
// whose exact word is a dictionary key, with only that word replaced by its
// expansion. Keys match whole words, case-sensitively. A nil or empty
// dictionary yields just the original text.
func Expand(text string, acronyms map[string]string) []string {
	variations := []string{text}
	if len(acronyms) == 0 {
		return variations
	}
	words := strings.Fields(text)
	for i, word := range words {
		expansion, ok := acronyms[word]
		if !ok {
			continue
		}
		replaced := make([]string, len(words))
		copy(replaced, words)
		replaced[i] = expansion
		variations = append(variations, strings.Join(replaced, " "))
	}
	return variations
}
