package ports

import "orderboard/internal/core/domain/services"

// ViewStore holds the dashboard view produced by the most recent completed
// refresh cycle. It has a single writer (the refresh pipeline) and many
// readers; Replace swaps the whole view atomically so a reader never
// observes a mix of two cycles. A failed refresh leaves the previous view
// in place.
type ViewStore interface {
	// Replace installs the view of a completed refresh cycle.
	Replace(view *services.DashboardView)

	// Current returns the last installed view, or nil before the first
	// completed cycle.
	Current() *services.DashboardView
}
