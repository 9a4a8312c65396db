package queries

import (
	"context"

	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
)

// GetDashboardQueryHandler reads the current DashboardView from the view
// store. It never recomputes anything: the refresh pipeline is the single
// writer and this handler is one of the many readers.
type GetDashboardQueryHandler struct {
	viewStore ports.ViewStore
}

// NewGetDashboardQueryHandler creates a handler reading from the given
// view store.
func NewGetDashboardQueryHandler(viewStore ports.ViewStore) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{viewStore: viewStore}
}

// Handle returns the last installed view, or ErrViewNotReady before the
// first completed refresh cycle.
func (h GetDashboardQueryHandler) Handle(_ context.Context, query GetDashboardQuery) (*services.DashboardView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view := h.viewStore.Current()
	if view == nil {
		return nil, ErrViewNotReady
	}
	return view, nil
}
