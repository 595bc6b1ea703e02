package match

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/hbollon/go-edlib"
)

// A Scorer computes a similarity value in [0,1] between two strings. Scorers
// are pure functions and safe for concurrent use.
type Scorer interface {
	// Name is the scorer's short identifier, used to scope result field
	// names (e.g. "ngram" gives ngram_score / best_ngram_form).
	Name() string
	Score(a, b string) float64
}

const trigram = 3

// NGramScorer measures trigram set overlap (Jaccard coefficient over
// character n-grams). Identical strings score 1, strings sharing no trigram
// score 0.
type NGramScorer struct{}

func (NGramScorer) Name() string { return "ngram" }

func (NGramScorer) Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) < trigram || len(b) < trigram {
		// no trigrams on at least one side, so the sets are disjoint
		return 0.0
	}
	return float64(edlib.JaccardSimilarity(a, b, trigram))
}

// PhoneticScorer compares Soundex codes: 1 when the two strings encode
// identically, else 0. A hard match/no-match signal, not a gradient.
type PhoneticScorer struct{}

func (PhoneticScorer) Name() string { return "phonetic" }

func (PhoneticScorer) Score(a, b string) float64 {
	if soundexCode(a) == soundexCode(b) {
		return 1.0
	}
	return 0.0
}

// soundexCode strips non-ASCII-letter characters before encoding, so that
// multi-word and punctuated values encode deterministically. Values with no
// letters encode to "".
func soundexCode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return ""
	}
	return matchr.Soundex(cleaned)
}

// LevenshteinScorer measures normalized edit-distance similarity: 1 for
// identical strings, scaling down to 0 with the number of single-character
// insertions, deletions, and substitutions relative to the longer string.
type LevenshteinScorer struct{}

func (LevenshteinScorer) Name() string { return "levenshtein" }

func (LevenshteinScorer) Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(sim)
}
