// Package catalog maintains the in-memory candidate set: loaded from
// Postgres at startup and kept current by candidate upsert events from Kafka.
package catalog

import (
	"log/slog"
	"sync"

	"github.com/brucee63/namematch/internal/table"
)

// Store holds the candidate rows behind a read-write lock. Matching calls
// take a Snapshot; updates replace rows rather than mutating them, so a
// snapshot taken before an update stays consistent.
type Store struct {
	mu     sync.RWMutex
	ids    map[string]int // candidate id -> position in rows
	rows   []table.Row
	tbl    *table.Table
	logger *slog.Logger

	// OnChange, when set, observes the row count after every mutation.
	OnChange func(size int)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		ids:    make(map[string]int),
		logger: slog.Default().With("component", "catalog"),
	}
}

// Replace swaps in a full candidate set, keyed by idColumn for later
// upserts. Rows lacking the id field are kept but cannot be addressed by
// events.
func (s *Store) Replace(rows []table.Row, idColumn string) {
	s.mu.Lock()
	s.rows = make([]table.Row, len(rows))
	copy(s.rows, rows)
	s.ids = make(map[string]int, len(rows))
	for i, row := range rows {
		if id := row[idColumn]; id != "" {
			s.ids[id] = i
		}
	}
	s.tbl = nil
	size := len(s.rows)
	s.mu.Unlock()

	s.logger.Info("candidate set replaced", "rows", size)
	s.changed(size)
}

// Upsert inserts or replaces the row for the given candidate id. Existing
// candidates keep their position; new ones append, preserving arrival order.
func (s *Store) Upsert(id string, row table.Row) {
	s.mu.Lock()
	if i, ok := s.ids[id]; ok {
		s.rows[i] = row.Clone()
	} else {
		s.ids[id] = len(s.rows)
		s.rows = append(s.rows, row.Clone())
	}
	s.tbl = nil
	size := len(s.rows)
	s.mu.Unlock()

	s.changed(size)
}

// Delete removes the row for the given candidate id, if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	i, ok := s.ids[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.rows = append(s.rows[:i:i], s.rows[i+1:]...)
	delete(s.ids, id)
	for id2, j := range s.ids {
		if j > i {
			s.ids[id2] = j - 1
		}
	}
	s.tbl = nil
	size := len(s.rows)
	s.mu.Unlock()

	s.changed(size)
}

// Snapshot returns the current candidate table. The table is rebuilt lazily
// after mutations and shared between callers; it is never mutated.
func (s *Store) Snapshot() *table.Table {
	s.mu.RLock()
	if tbl := s.tbl; tbl != nil {
		s.mu.RUnlock()
		return tbl
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tbl == nil {
		s.tbl = table.New(s.rows)
	}
	return s.tbl
}

// Len returns the number of candidate rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Store) changed(size int) {
	if s.OnChange != nil {
		s.OnChange(size)
	}
}
