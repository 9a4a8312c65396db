package ports

import (
	"context"
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
)

// ErrTransitionRejected is the unwrap target for server-side transition
// rejections, allowing callers to distinguish a validation refusal from a
// transport failure with errors.Is.
var ErrTransitionRejected = errors.New("transition rejected by server")

// TransitionRejectedError carries the server's human-readable reason for
// refusing a status-transition request. No local state is mutated when this
// error is returned.
type TransitionRejectedError struct {
	Reason     string
	StatusCode int
}

// NewTransitionRejectedError creates a TransitionRejectedError from the
// server's response.
func NewTransitionRejectedError(reason string, statusCode int) *TransitionRejectedError {
	return &TransitionRejectedError{Reason: reason, StatusCode: statusCode}
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransitionRejected, e.Reason)
}

// Unwrap returns the sentinel ErrTransitionRejected for errors.Is support.
func (e *TransitionRejectedError) Unwrap() error {
	return ErrTransitionRejected
}

// ListFilter narrows a snapshot fetch. Zero values mean "no filter". At most
// one status can be requested per call; the driver fetch plan issues one
// call per awaiting status and merges the results.
type ListFilter struct {
	ClientID   string
	AssignedTo string
	Status     order.Status
	Limit      int
	Offset     int
}

// NewOrderRequest carries the fields of an order submission.
type NewOrderRequest struct {
	ClientID        string
	PickupAddress   string
	DeliveryAddress string
	SenderName      string
	ReceiverName    string
	Package         order.Package
}

// OrderGateway is the boundary to the order-owning backend. The backend is
// the sole source of truth: every mutation goes through it and every read
// reflects its state at fetch time. Fetches are idempotent.
type OrderGateway interface {
	// ListOrders fetches a snapshot of orders matching the filter, in the
	// backend's stable order, along with the total match count.
	ListOrders(ctx context.Context, filter ListFilter) ([]*order.Order, int, error)

	// GetOrder fetches a single order by identifier, including its full
	// status history.
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// RequestTransition asks the server to move the order to the target
	// status, with an optional free-text note. Returns the updated order
	// on success or a *TransitionRejectedError when the server refuses.
	// The server is authoritative on legality and on resolving the
	// DELIVERY_ATTEMPTED branch.
	RequestTransition(ctx context.Context, id kernel.UUID, target order.Status, note string) (*order.Order, error)

	// ListDrivers fetches the registered driver roster for the admin
	// dashboard.
	ListDrivers(ctx context.Context) ([]viewer.Driver, error)

	// CreateOrder submits a new order. The created order is returned for
	// confirmation but is only ever rendered from subsequent snapshots.
	CreateOrder(ctx context.Context, request NewOrderRequest) (*order.Order, error)
}
