package services

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
)

// Stats holds the aggregate counters shown above the order lists. Which
// fields are meaningful depends on the role: clients read Total, Delivered,
// InProgress, and InTransit; admins read Total, Delivered, Processing,
// Failed, and ActivePickup.
type Stats struct {
	Total        int
	Delivered    int
	InProgress   int
	InTransit    int
	Processing   int
	Failed       int
	ActivePickup int
}

// DriverLoad pairs a roster entry with the driver's live count of assigned,
// non-terminal orders. An order counts when the driver holds either the
// pickup or the delivery assignment.
type DriverLoad struct {
	Driver       viewer.Driver
	ActiveOrders int
}

// DashboardView is the product of one refresh cycle: everything the
// rendering layer needs to draw a dashboard. It is immutable once built and
// replaced atomically in the view store; a reader never observes a mix of
// two cycles.
type DashboardView struct {
	Role        viewer.Role
	Identity    string
	GeneratedAt time.Time
	Sets        []WorkingSet
	Stats       Stats
	DriverLoads []DriverLoad
}

// Set returns the orders of the named working set, or nil when the view has
// no set of that name.
func (v *DashboardView) Set(name string) []*order.Order {
	for _, set := range v.Sets {
		if set.Name == name {
			return set.Orders
		}
	}
	return nil
}

// FindOrder locates an order by identifier across all working sets. Returns
// nil when the order is not part of the view.
func (v *DashboardView) FindOrder(id kernel.UUID) *order.Order {
	for _, set := range v.Sets {
		for _, o := range set.Orders {
			if o.ID().IsEqual(id) {
				return o
			}
		}
	}
	return nil
}
