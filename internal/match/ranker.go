package match

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/brucee63/namematch/internal/table"
	apperrors "github.com/brucee63/namematch/pkg/errors"
)

// Ranked is one entry of a ranked result. Score is the scorer's value for
// single-method ranking; in hybrid mode it is the n-gram score of a
// candidate that passed the phonetic gate.
type Ranked struct {
	Row      table.Row
	Score    float64
	BestForm string
}

// Result is the outcome of a TopN call.
type Result struct {
	Query     string
	Method    Method
	Evaluated int // candidate rows scored
	Gated     int // rows excluded by the phonetic gate (hybrid only)
	Matches   []Ranked
}

// TopN ranks the candidate table against query and returns at most n
// matches, most similar first, ties keeping candidate order. n <= 0 returns
// the full ranking.
//
// Single-method modes sort by that scorer's score. Hybrid runs the n-gram
// and phonetic matchers over the full table, keeps only candidates whose
// phonetic score is exactly 1, and sorts those by n-gram score; with no
// phonetic match anywhere the result is empty regardless of n-gram scores.
func TopN(query string, tbl *table.Table, column string, acronyms map[string]string, n int, method Method) (*Result, error) {
	result := &Result{
		Query:     query,
		Method:    method,
		Evaluated: tbl.Len(),
	}

	switch method {
	case MethodNGram, MethodPhonetic, MethodLevenshtein:
		scorer, _ := method.Scorer()
		matches, err := Candidates(query, tbl, column, acronyms, scorer)
		if err != nil {
			return nil, err
		}
		ranked := make([]Ranked, 0, len(matches))
		for _, m := range matches {
			ranked = append(ranked, Ranked{Row: m.Row, Score: m.Score, BestForm: m.BestForm})
		}
		result.Matches = truncate(sortByScore(ranked), n)
		return result, nil

	case MethodHybrid:
		var ngram, phonetic []Match
		var g errgroup.Group
		g.Go(func() error {
			var err error
			ngram, err = Candidates(query, tbl, column, acronyms, NGramScorer{})
			return err
		})
		g.Go(func() error {
			var err error
			phonetic, err = Candidates(query, tbl, column, acronyms, PhoneticScorer{})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Both matchers emit one record per row in row order, so joining on
		// candidate identity is an index join.
		ranked := make([]Ranked, 0, len(ngram))
		for i := range ngram {
			if phonetic[i].Score != 1.0 {
				result.Gated++
				continue
			}
			ranked = append(ranked, Ranked{
				Row:      ngram[i].Row,
				Score:    ngram[i].Score,
				BestForm: ngram[i].BestForm,
			})
		}
		result.Matches = truncate(sortByScore(ranked), n)
		return result, nil

	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidMethod, method)
	}
}

// sortByScore orders descending by score; the stable sort preserves original
// candidate order among equal scores.
func sortByScore(ranked []Ranked) []Ranked {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func truncate(ranked []Ranked, n int) []Ranked {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
