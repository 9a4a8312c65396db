// Package queries contains the read side of the CQRS split: retrieving the
// projected dashboard view and single-order details. Queries never trigger
// fetches or recompute working sets; they read what the refresh pipeline
// last installed, or ask the backend for a single record.
package queries

import (
	"errors"

	"orderboard/internal/pkg/guard"
)

var (
	ErrGetDashboardQueryIsNotConstructed = errors.New(
		"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
	)

	// ErrViewNotReady is returned before the first refresh cycle has
	// completed: there is no view to show yet.
	ErrViewNotReady = errors.New("no dashboard view available yet")
)

// GetDashboardQuery retrieves the current dashboard view: the working sets
// and aggregate counts produced by the most recent completed refresh.
//
// Example:
//
//	query := NewGetDashboardQuery()
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrViewNotReady) {
//	    // first refresh still in flight
//	}
type GetDashboardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDashboardQuery creates a parameterless dashboard query.
func NewGetDashboardQuery() GetDashboardQuery {
	return GetDashboardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}
