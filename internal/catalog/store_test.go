package catalog

import (
	"testing"

	"github.com/brucee63/namematch/internal/table"
)

func seededStore() *Store {
	s := NewStore()
	s.Replace([]table.Row{
		{"id": "1", "full_name": "JS Plumbing"},
		{"id": "2", "full_name": "Jon Smyth Plumbing"},
	}, "id")
	return s
}

func TestStoreReplaceAndSnapshot(t *testing.T) {
	s := seededStore()
	tbl := s.Snapshot()
	if tbl.Len() != 2 {
		t.Fatalf("snapshot Len() = %d, want 2", tbl.Len())
	}
	if got := tbl.Row(0)["full_name"]; got != "JS Plumbing" {
		t.Errorf("row 0 = %q, want JS Plumbing", got)
	}
	if !tbl.HasColumn("full_name") {
		t.Error("snapshot missing full_name column")
	}
}

func TestStoreUpsertExistingKeepsPosition(t *testing.T) {
	s := seededStore()
	s.Upsert("1", table.Row{"id": "1", "full_name": "John Smith Plumbing"})

	tbl := s.Snapshot()
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after replacing an existing row", tbl.Len())
	}
	if got := tbl.Row(0)["full_name"]; got != "John Smith Plumbing" {
		t.Errorf("row 0 = %q, want updated value in original position", got)
	}
}

func TestStoreUpsertNewAppends(t *testing.T) {
	s := seededStore()
	s.Upsert("3", table.Row{"id": "3", "full_name": "JB Electrical"})

	tbl := s.Snapshot()
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	if got := tbl.Row(2)["full_name"]; got != "JB Electrical" {
		t.Errorf("row 2 = %q, want the new candidate appended last", got)
	}
}

func TestStoreUpsertClonesRow(t *testing.T) {
	s := NewStore()
	row := table.Row{"id": "1", "full_name": "JS Plumbing"}
	s.Upsert("1", row)
	row["full_name"] = "mutated"
	if got := s.Snapshot().Row(0)["full_name"]; got != "JS Plumbing" {
		t.Errorf("store aliased the caller's row: %q", got)
	}
}

func TestStoreDelete(t *testing.T) {
	s := seededStore()
	s.Upsert("3", table.Row{"id": "3", "full_name": "JB Electrical"})
	s.Delete("1")

	tbl := s.Snapshot()
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after delete", tbl.Len())
	}
	if got := tbl.Row(0)["full_name"]; got != "Jon Smyth Plumbing" {
		t.Errorf("row 0 = %q, want survivors shifted up", got)
	}

	// Positions were reindexed, so a later upsert by id still lands on the
	// right row.
	s.Upsert("3", table.Row{"id": "3", "full_name": "Jim Browne Electrical"})
	tbl = s.Snapshot()
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after in-place upsert", tbl.Len())
	}
	if got := tbl.Row(1)["full_name"]; got != "Jim Browne Electrical" {
		t.Errorf("row 1 = %q, want reindexed upsert target", got)
	}
}

func TestStoreDeleteUnknownIsNoop(t *testing.T) {
	s := seededStore()
	s.Delete("missing")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := seededStore()
	before := s.Snapshot()
	s.Upsert("3", table.Row{"id": "3", "full_name": "JB Electrical"})
	if before.Len() != 2 {
		t.Errorf("snapshot taken before the update changed: Len() = %d", before.Len())
	}
	if after := s.Snapshot(); after.Len() != 3 {
		t.Errorf("fresh snapshot Len() = %d, want 3", after.Len())
	}
}

func TestStoreOnChange(t *testing.T) {
	s := NewStore()
	var sizes []int
	s.OnChange = func(size int) { sizes = append(sizes, size) }

	s.Replace([]table.Row{{"id": "1"}}, "id")
	s.Upsert("2", table.Row{"id": "2"})
	s.Delete("1")

	want := []int{1, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("OnChange fired %d times, want %d", len(sizes), len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("OnChange call %d = %d, want %d", i, sizes[i], want[i])
		}
	}
}
