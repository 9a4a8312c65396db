package commands

import (
	"context"
	"time"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
)

// awaitingStatuses are fetched one by one for drivers, since the gateway
// accepts a single status filter per call.
var awaitingStatuses = []order.Status{
	order.StatusWMSReceived,
	order.StatusRouteOptimized,
	order.StatusReady,
}

// RefreshViewCommandHandler executes one refresh cycle: it runs the
// role-specific fetch plan against the backend, projects the snapshot into
// a DashboardView, and installs the view atomically. The engine's consumer
// loop is the only caller, which keeps cycles strictly sequential.
//
// A failed cycle installs nothing: the previous view stays current and the
// error is surfaced to the caller.
type RefreshViewCommandHandler struct {
	gateway    SnapshotFetcher
	projector  services.ViewProjector
	viewStore  ports.ViewStore
	session    viewer.Session
	fetchLimit int
}

// NewRefreshViewCommandHandler creates a handler bound to one viewer
// session. fetchLimit caps every snapshot fetch.
func NewRefreshViewCommandHandler(
	gateway SnapshotFetcher,
	projector services.ViewProjector,
	viewStore ports.ViewStore,
	session viewer.Session,
	fetchLimit int,
) RefreshViewCommandHandler {
	return RefreshViewCommandHandler{
		gateway:    gateway,
		projector:  projector,
		viewStore:  viewStore,
		session:    session,
		fetchLimit: fetchLimit,
	}
}

// Handle runs the fetch plan, classifies and projects the snapshot, and
// replaces the stored view. The plan is one atomic cycle: classification
// never runs on a partially fetched plan.
func (h *RefreshViewCommandHandler) Handle(ctx context.Context, cmd RefreshViewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.session.Validate(); err != nil {
		return err
	}

	snapshot, drivers, err := h.fetchPlan(ctx)
	if err != nil {
		return err
	}

	view, err := h.projector.Project(snapshot, drivers, h.session, time.Now())
	if err != nil {
		return err
	}

	h.viewStore.Replace(view)
	return nil
}

func (h *RefreshViewCommandHandler) fetchPlan(ctx context.Context) ([]*order.Order, []viewer.Driver, error) {
	switch h.session.Role() {
	case viewer.RoleClient:
		snapshot, _, err := h.gateway.ListOrders(ctx, ports.ListFilter{
			ClientID: h.session.Identity(),
			Limit:    h.fetchLimit,
		})
		return snapshot, nil, err

	case viewer.RoleAdmin:
		snapshot, _, err := h.gateway.ListOrders(ctx, ports.ListFilter{Limit: h.fetchLimit})
		if err != nil {
			return nil, nil, err
		}
		drivers, err := h.gateway.ListDrivers(ctx)
		if err != nil {
			return nil, nil, err
		}
		return snapshot, drivers, nil

	default:
		return h.fetchForDriver(ctx)
	}
}

// fetchForDriver merges the driver's assigned orders with the awaiting
// (pre-assignment) orders, de-duplicated by identifier with assigned
// results first.
func (h *RefreshViewCommandHandler) fetchForDriver(ctx context.Context) ([]*order.Order, []viewer.Driver, error) {
	assigned, _, err := h.gateway.ListOrders(ctx, ports.ListFilter{
		AssignedTo: h.session.Identity(),
		Limit:      h.fetchLimit,
	})
	if err != nil {
		return nil, nil, err
	}

	snapshot := make([]*order.Order, 0, len(assigned))
	seen := make(map[string]bool, len(assigned))
	for _, o := range assigned {
		if seen[o.ID().String()] {
			continue
		}
		seen[o.ID().String()] = true
		snapshot = append(snapshot, o)
	}

	for _, status := range awaitingStatuses {
		awaiting, _, listErr := h.gateway.ListOrders(ctx, ports.ListFilter{
			Status: status,
			Limit:  h.fetchLimit,
		})
		if listErr != nil {
			return nil, nil, listErr
		}
		for _, o := range awaiting {
			if seen[o.ID().String()] {
				continue
			}
			seen[o.ID().String()] = true
			snapshot = append(snapshot, o)
		}
	}

	return snapshot, nil, nil
}
