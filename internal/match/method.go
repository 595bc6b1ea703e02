package match

import (
	"fmt"

	apperrors "github.com/brucee63/namematch/pkg/errors"
)

// Method selects the matching strategy.
type Method string

const (
	MethodNGram       Method = "ngram"
	MethodPhonetic    Method = "phonetic"
	MethodLevenshtein Method = "levenshtein"
	MethodHybrid      Method = "hybrid"
)

// DefaultMethod is used when the caller does not name one.
const DefaultMethod = MethodHybrid

// ParseMethod validates a method name. The empty string selects
// DefaultMethod; anything else unrecognized fails with ErrInvalidMethod.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "":
		return DefaultMethod, nil
	case MethodNGram, MethodPhonetic, MethodLevenshtein, MethodHybrid:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q (must be ngram, phonetic, levenshtein, or hybrid)", apperrors.ErrInvalidMethod, s)
	}
}

// Scorer returns the scorer backing a single-method strategy, or ok=false for
// hybrid, which combines two scorers.
func (m Method) Scorer() (Scorer, bool) {
	switch m {
	case MethodNGram:
		return NGramScorer{}, true
	case MethodPhonetic:
		return PhoneticScorer{}, true
	case MethodLevenshtein:
		return LevenshteinScorer{}, true
	default:
		return nil, false
	}
}
