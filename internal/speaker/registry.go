// Package speaker accumulates the speaker labels the translation service has
// assigned so far in a run. The registry is fed back into every batch prompt
// so the service reuses names for recurring characters instead of inventing
// new ones.
package speaker

import (
	"strings"
	"sync"
)

// Registry is a monotonically growing, insertion-ordered set of speaker
// labels. It never shrinks during a run; Reset clears it for the next run.
// Safe for concurrent observers reading while a run records labels.
type Registry struct {
	mu    sync.RWMutex
	seen  map[string]struct{}
	order []string
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Record inserts a label. Empty labels and duplicates are ignored.
func (r *Registry) Record(label string) {
	if label == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[label]; ok {
		return
	}
	r.seen[label] = struct{}{}
	r.order = append(r.order, label)
}

// Known returns the labels in first-seen order.
func (r *Registry) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Hint renders the registry as the comma-joined continuity hint injected
// into each batch prompt. Empty when no speaker has been seen yet.
func (r *Registry) Hint() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.Join(r.order, ", ")
}

// Len returns the number of distinct labels recorded.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears all recorded labels so the registry can serve a new run.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
	r.order = nil
}
