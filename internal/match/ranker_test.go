package match

import (
	"errors"
	"testing"

	"github.com/brucee63/namematch/internal/table"
	apperrors "github.com/brucee63/namematch/pkg/errors"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"ngram", MethodNGram, false},
		{"phonetic", MethodPhonetic, false},
		{"levenshtein", MethodLevenshtein, false},
		{"hybrid", MethodHybrid, false},
		{"", MethodHybrid, false},
		{"banana", "", true},
		{"NGRAM", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidMethod) {
				t.Errorf("ParseMethod(%q) error = %v, want ErrInvalidMethod", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTopNInvalidMethod(t *testing.T) {
	_, err := TopN("query", businessTable(), "full_name", nil, 5, Method("banana"))
	if !errors.Is(err, apperrors.ErrInvalidMethod) {
		t.Fatalf("got error %v, want ErrInvalidMethod", err)
	}
}

func TestTopNInvalidColumn(t *testing.T) {
	for _, method := range []Method{MethodNGram, MethodHybrid} {
		_, err := TopN("query", businessTable(), "nope", nil, 5, method)
		if !errors.Is(err, apperrors.ErrInvalidColumn) {
			t.Errorf("method %s: got error %v, want ErrInvalidColumn", method, err)
		}
	}
}

func TestTopNTruncatesAndSorts(t *testing.T) {
	result, err := TopN("John Smith Plumbing", businessTable(), "full_name", businessAcronyms, 2, MethodNGram)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(result.Matches))
	}
	for i := 1; i < len(result.Matches); i++ {
		if result.Matches[i].Score > result.Matches[i-1].Score {
			t.Errorf("matches not sorted non-increasing at %d: %v > %v", i, result.Matches[i].Score, result.Matches[i-1].Score)
		}
	}
	if result.Matches[0].Row["id"] != "1" {
		t.Errorf("best match id = %q, want the expanded acronym candidate", result.Matches[0].Row["id"])
	}
	if result.Evaluated != 4 {
		t.Errorf("Evaluated = %d, want 4", result.Evaluated)
	}
}

func TestTopNStableTies(t *testing.T) {
	tbl := table.New([]table.Row{
		{"id": "a", "name": "Smith"},
		{"id": "b", "name": "Smyth"},
		{"id": "c", "name": "Smithe"},
		{"id": "d", "name": "Jones"},
	})
	result, err := TopN("Smith", tbl, "name", nil, 10, MethodPhonetic)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}
	// Smith, Smyth, and Smithe all encode identically; ties must keep
	// candidate order.
	wantOrder := []string{"a", "b", "c", "d"}
	for i, want := range wantOrder {
		if got := result.Matches[i].Row["id"]; got != want {
			t.Errorf("position %d: id = %q, want %q", i, got, want)
		}
	}
	if result.Matches[3].Score != 0 {
		t.Errorf("Jones scored %v, want 0", result.Matches[3].Score)
	}
}

func TestTopNHybridScenario(t *testing.T) {
	tbl := table.New([]table.Row{
		{"id": "1", "full_name": "JS Plumbing"},
		{"id": "2", "full_name": "Jon Smyth Plumbing"},
		{"id": "3", "full_name": "JB Electrical"},
	})
	dict := map[string]string{"JS": "John Smith"}

	result, err := TopN("John Smith Plumbing", tbl, "full_name", dict, 5, MethodHybrid)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}

	if len(result.Matches) != 2 {
		t.Fatalf("got %d matches, want 2 (JB Electrical fails the phonetic gate)", len(result.Matches))
	}
	for _, m := range result.Matches {
		if m.Row["full_name"] == "JB Electrical" {
			t.Fatalf("JB Electrical returned despite failing the phonetic gate")
		}
	}

	// Acronym expansion makes JS Plumbing a perfect n-gram match, so it must
	// rank at least as high as the spelled-out near miss.
	if result.Matches[0].Row["full_name"] != "JS Plumbing" {
		t.Errorf("top match = %q, want JS Plumbing", result.Matches[0].Row["full_name"])
	}
	if result.Matches[0].Score != 1.0 {
		t.Errorf("top n-gram score = %v, want 1.0", result.Matches[0].Score)
	}
	if result.Gated != 1 {
		t.Errorf("Gated = %d, want 1", result.Gated)
	}
}

func TestTopNHybridGateBeatsNGram(t *testing.T) {
	// Near-perfect trigram overlap, but the leading consonant changes the
	// phonetic code, so hybrid mode must exclude it entirely.
	tbl := table.New([]table.Row{
		{"id": "1", "full_name": "Nary Jane Bakery"},
	})
	result, err := TopN("Mary Jane Bakery", tbl, "full_name", nil, 5, MethodHybrid)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}
	if len(result.Matches) != 0 {
		t.Fatalf("got %d matches, want 0: phonetic gate must exclude regardless of n-gram score", len(result.Matches))
	}
	if result.Gated != 1 {
		t.Errorf("Gated = %d, want 1", result.Gated)
	}

	// Sanity: the same candidate ranks under pure n-gram matching.
	ngram, err := TopN("Mary Jane Bakery", tbl, "full_name", nil, 5, MethodNGram)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}
	if len(ngram.Matches) != 1 || ngram.Matches[0].Score <= 0.5 {
		t.Errorf("n-gram mode should rank the near miss highly, got %+v", ngram.Matches)
	}
}

func TestTopNNonPositiveReturnsAll(t *testing.T) {
	result, err := TopN("John Smith Plumbing", businessTable(), "full_name", businessAcronyms, 0, MethodLevenshtein)
	if err != nil {
		t.Fatalf("TopN returned error: %v", err)
	}
	if len(result.Matches) != 4 {
		t.Errorf("got %d matches, want full ranking (4)", len(result.Matches))
	}
}
