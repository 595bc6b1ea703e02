package match

import (
	"github.com/brucee63/namematch/internal/table"
)

// Match is the scoring outcome for one candidate row: the best score its
// variation set achieved under a scorer, and the variation that achieved it.
type Match struct {
	Row      table.Row
	Score    float64
	BestForm string
}

// Candidates scores every row of tbl against query with the given scorer,
// returning one Match per row in row order. Per row, the value of column is
// expanded through the acronym dictionary and every variation is scored; the
// maximum score wins, with the first-seen variation kept on ties (the
// original value is evaluated first). The table is never mutated.
//
// Fails with ErrInvalidColumn when column is not present on tbl.
func Candidates(query string, tbl *table.Table, column string, acronyms map[string]string, scorer Scorer) ([]Match, error) {
	col, err := tbl.Column(column)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		value := col.Value(i)
		bestScore := 0.0
		bestForm := value
		for _, form := range Expand(value, acronyms) {
			if score := scorer.Score(query, form); score > bestScore {
				bestScore = score
				bestForm = form
			}
		}
		matches = append(matches, Match{
			Row:      tbl.Row(i),
			Score:    bestScore,
			BestForm: bestForm,
		})
	}
	return matches, nil
}
