// Package viewmem provides the in-memory view store: process-local,
// mutable-by-replacement state with a single writer (the refresh pipeline)
// and many readers.
package viewmem

import (
	"sync/atomic"

	"orderboard/internal/core/domain/services"
)

// Store holds the latest DashboardView behind an atomic pointer. Replace
// swaps the whole view at once, so readers always see a view from exactly
// one refresh cycle — never a mix of two.
type Store struct {
	view atomic.Pointer[services.DashboardView]
}

// NewStore creates an empty store. Current returns nil until the first
// Replace.
func NewStore() *Store {
	return &Store{}
}

// Replace installs the view of a completed refresh cycle.
func (s *Store) Replace(view *services.DashboardView) {
	s.view.Store(view)
}

// Current returns the last installed view, or nil before the first one.
func (s *Store) Current() *services.DashboardView {
	return s.view.Load()
}
