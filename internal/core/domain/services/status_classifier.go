package services

import (
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
)

// Working set names. Each refresh recomputes the sets from scratch; they are
// never mutated incrementally.
const (
	// SetAwaiting holds pre-assignment orders visible to drivers
	// (WMS_RECEIVED, ROUTE_OPTIMIZED, READY). Visibility only, never
	// actionable by the viewing driver.
	SetAwaiting = "awaiting"

	// SetPickups holds the viewer's active pickup assignments.
	SetPickups = "pickups"

	// SetDeliveries holds the viewer's active delivery assignments.
	SetDeliveries = "deliveries"

	// SetCompleted holds the viewer's finished assignments (DELIVERED or
	// FAILED on either leg).
	SetCompleted = "completed"

	// SetAll is the whole snapshot, used by client and admin dashboards.
	SetAll = "all"
)

// WorkingSet is a named, ordered, role-scoped subset of the snapshot.
// Snapshot insertion order is preserved.
type WorkingSet struct {
	Name   string
	Orders []*order.Order
}

// StatusClassifier partitions an order snapshot into the working sets
// relevant to one viewer. It is pure and deterministic: no I/O, no clock,
// same snapshot and session always yield the same sets.
//
// For drivers, pickups, deliveries, and completed are mutually exclusive:
// an order lands in at most one of them. The awaiting set is disjoint from
// all three by construction since its statuses precede assignment.
type StatusClassifier struct{}

// NewStatusClassifier creates a classifier. It is stateless; one instance
// serves any number of refresh cycles.
func NewStatusClassifier() StatusClassifier {
	return StatusClassifier{}
}

// Classify maps the snapshot to the working sets for the session's role.
// Orders with no assignment in a relevant field are excluded from
// driver-scoped sets. Unrecognized statuses never reach this point: the
// adapter quarantines them, and the closed status predicates below cannot
// match them anyway.
func (c StatusClassifier) Classify(snapshot []*order.Order, session viewer.Session) ([]WorkingSet, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	switch session.Role() {
	case viewer.RoleDriver:
		return c.classifyForDriver(snapshot, session.Identity()), nil
	default:
		// Client snapshots arrive server-filtered to the viewer's own
		// orders; admin sees everything. Either way the single set is
		// the snapshot itself and partitioning happens in the counters.
		orders := make([]*order.Order, len(snapshot))
		copy(orders, snapshot)
		return []WorkingSet{{Name: SetAll, Orders: orders}}, nil
	}
}

func (c StatusClassifier) classifyForDriver(snapshot []*order.Order, identity string) []WorkingSet {
	awaiting := make([]*order.Order, 0)
	pickups := make([]*order.Order, 0)
	deliveries := make([]*order.Order, 0)
	completed := make([]*order.Order, 0)

	for _, o := range snapshot {
		status := o.Status()
		switch {
		case status.IsAwaitingAssignment():
			awaiting = append(awaiting, o)
		case o.IsPickupAssignedTo(identity) && status.IsActivePickup():
			pickups = append(pickups, o)
		case o.IsDeliveryAssignedTo(identity) && status.IsActiveDelivery():
			deliveries = append(deliveries, o)
		case o.IsAssignedTo(identity) && (status == order.StatusDelivered || status == order.StatusFailed):
			completed = append(completed, o)
		}
	}

	return []WorkingSet{
		{Name: SetAwaiting, Orders: awaiting},
		{Name: SetPickups, Orders: pickups},
		{Name: SetDeliveries, Orders: deliveries},
		{Name: SetCompleted, Orders: completed},
	}
}
