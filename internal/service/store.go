package service

import (
	"sync"

	"github.com/Spring-Mustache/translate-srt/internal/subtitle"
)

// ResultStore is the append-only, insertion-ordered collection of translated
// entries for one run. It grows batch by batch and is cleared only at the
// start of a new run. The batch loop is the only writer; the lock exists so
// observers can snapshot while a run is in flight.
type ResultStore struct {
	mu      sync.RWMutex
	entries []subtitle.TranslatedEntry
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Append adds a batch's items in response order.
func (s *ResultStore) Append(items []subtitle.TranslatedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, items...)
}

// Snapshot returns a copy of all accumulated entries. Partial result sets
// from a failed run are a legitimate, exportable outcome.
func (s *ResultStore) Snapshot() []subtitle.TranslatedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]subtitle.TranslatedEntry(nil), s.entries...)
}

// Len returns the number of accumulated entries.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reset clears the store for a new run.
func (s *ResultStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
