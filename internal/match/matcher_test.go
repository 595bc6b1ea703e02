package match

import (
	"errors"
	"testing"

	"github.com/brucee63/namematch/internal/table"
	apperrors "github.com/brucee63/namematch/pkg/errors"
)

func businessTable() *table.Table {
	return table.New([]table.Row{
		{"id": "1", "full_name": "JS Plumbing"},
		{"id": "2", "full_name": "Jon Smyth Plumbing"},
		{"id": "3", "full_name": "JB Electrical"},
		{"id": "4", "full_name": "Jim Browne Electrical"},
	})
}

var businessAcronyms = map[string]string{
	"JS": "John Smith",
	"JB": "James Brown",
}

func TestCandidatesExpansionFindsBestForm(t *testing.T) {
	matches, err := Candidates("John Smith Plumbing", businessTable(), "full_name", businessAcronyms, NGramScorer{})
	if err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("got %d matches, want one per candidate (4)", len(matches))
	}

	// The expanded form of "JS Plumbing" is the query itself.
	first := matches[0]
	if first.Row["id"] != "1" {
		t.Fatalf("candidate order not preserved: first row id = %q", first.Row["id"])
	}
	if first.Score != 1.0 {
		t.Errorf("expanded exact match scored %v, want 1.0", first.Score)
	}
	if first.BestForm != "John Smith Plumbing" {
		t.Errorf("best form = %q, want the expanded variation", first.BestForm)
	}

	// A candidate with no applicable acronym keeps its original as best form.
	second := matches[1]
	if second.BestForm != "Jon Smyth Plumbing" {
		t.Errorf("best form = %q, want original value", second.BestForm)
	}
	if second.Score <= 0 || second.Score >= 1 {
		t.Errorf("partial match scored %v, want value in (0,1)", second.Score)
	}
}

func TestCandidatesInvalidColumn(t *testing.T) {
	_, err := Candidates("query", businessTable(), "company_name", nil, NGramScorer{})
	if !errors.Is(err, apperrors.ErrInvalidColumn) {
		t.Fatalf("got error %v, want ErrInvalidColumn", err)
	}
}

// constantScorer returns the same score for every pair, exposing tie-break
// behavior.
type constantScorer struct{}

func (constantScorer) Name() string              { return "constant" }
func (constantScorer) Score(a, b string) float64 { return 0.5 }

func TestCandidatesFirstSeenVariationWinsTies(t *testing.T) {
	matches, err := Candidates("anything", businessTable(), "full_name", businessAcronyms, constantScorer{})
	if err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	for _, m := range matches {
		if m.BestForm != m.Row["full_name"] {
			t.Errorf("tie broken away from original: best form %q for value %q", m.BestForm, m.Row["full_name"])
		}
	}
}

func TestCandidatesDoesNotMutateTable(t *testing.T) {
	tbl := businessTable()
	if _, err := Candidates("John Smith Plumbing", tbl, "full_name", businessAcronyms, NGramScorer{}); err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	want := businessTable()
	for i := 0; i < tbl.Len(); i++ {
		for k, v := range want.Row(i) {
			if tbl.Row(i)[k] != v {
				t.Errorf("row %d field %q mutated: %q", i, k, tbl.Row(i)[k])
			}
		}
		if len(tbl.Row(i)) != len(want.Row(i)) {
			t.Errorf("row %d gained or lost fields", i)
		}
	}
}

func TestCandidatesEmptyTable(t *testing.T) {
	_, err := Candidates("query", table.New(nil), "full_name", nil, NGramScorer{})
	if !errors.Is(err, apperrors.ErrInvalidColumn) {
		t.Fatalf("empty table lookup: got error %v, want ErrInvalidColumn", err)
	}
}

func TestCandidatesMissingFieldScoresAsEmpty(t *testing.T) {
	tbl := table.New([]table.Row{
		{"full_name": "JS Plumbing"},
		{"other": "no name here"},
	})
	matches, err := Candidates("JS Plumbing", tbl, "full_name", nil, NGramScorer{})
	if err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	if matches[1].Score != 0.0 {
		t.Errorf("row without the match column scored %v, want 0.0 (empty-string semantics)", matches[1].Score)
	}
}
