package match

import (
	"reflect"
	"testing"
)

func TestExpand(t *testing.T) {
	dict := map[string]string{
		"JS": "John Smith",
		"JB": "James Brown",
	}

	tests := []struct {
		name     string
		text     string
		acronyms map[string]string
		want     []string
	}{
		{
			name:     "empty dictionary yields original only",
			text:     "JS Plumbing",
			acronyms: map[string]string{},
			want:     []string{"JS Plumbing"},
		},
		{
			name:     "nil dictionary yields original only",
			text:     "JS Plumbing",
			acronyms: nil,
			want:     []string{"JS Plumbing"},
		},
		{
			name:     "no acronym present",
			text:     "Jon Smyth Plumbing",
			acronyms: dict,
			want:     []string{"Jon Smyth Plumbing"},
		},
		{
			name:     "single acronym expands once",
			text:     "JS Plumbing",
			acronyms: dict,
			want:     []string{"JS Plumbing", "John Smith Plumbing"},
		},
		{
			name:     "one variation per acronym word",
			text:     "JS and JB",
			acronyms: dict,
			want:     []string{"JS and JB", "John Smith and JB", "JS and James Brown"},
		},
		{
			name:     "repeated acronym expands per position",
			text:     "JS vs JS",
			acronyms: dict,
			want:     []string{"JS vs JS", "John Smith vs JS", "JS vs John Smith"},
		},
		{
			name:     "keys are case-sensitive",
			text:     "js Plumbing",
			acronyms: dict,
			want:     []string{"js Plumbing"},
		},
		{
			name:     "keys match whole words only",
			text:     "JSX Plumbing",
			acronyms: dict,
			want:     []string{"JSX Plumbing"},
		},
		{
			name:     "empty text",
			text:     "",
			acronyms: dict,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.text, tt.acronyms)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExpandOriginalAlwaysFirst(t *testing.T) {
	dict := map[string]string{"ACME": "A Company Making Everything"}
	texts := []string{"ACME", "ACME Widgets", "Widgets ACME", "plain text"}
	for _, text := range texts {
		got := Expand(text, dict)
		if len(got) == 0 || got[0] != text {
			t.Errorf("Expand(%q) first element = %v, want original text", text, got)
		}
	}
}
