// Package commands contains the operations through which dashboards act:
// refreshing the projected view and submitting status transitions.
// Implements the Command pattern for the write side of the CQRS split.
// All commands follow a consistent pattern: guarded construction,
// validation, then a call through the backend gateway.
package commands

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/ports"
)

// Narrow views of ports.OrderGateway, one per handler concern. Handlers
// depend only on the calls they make.
type (
	// SnapshotFetcher covers the reads of one refresh cycle.
	SnapshotFetcher interface {
		ListOrders(ctx context.Context, filter ports.ListFilter) ([]*order.Order, int, error)
		ListDrivers(ctx context.Context) ([]viewer.Driver, error)
	}

	// TransitionRequester submits status-transition requests.
	TransitionRequester interface {
		RequestTransition(ctx context.Context, id kernel.UUID, target order.Status, note string) (*order.Order, error)
	}

	// OrderSubmitter submits new orders.
	OrderSubmitter interface {
		CreateOrder(ctx context.Context, request ports.NewOrderRequest) (*order.Order, error)
	}
)
