package services

import (
	"time"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
)

// ViewProjector assembles the per-dashboard read model: it runs the
// classifier over the latest snapshot, computes the aggregate counters, and
// (for admins) the driver-load roster. Like the classifier it is pure; the
// generation time is passed in rather than read from a clock.
type ViewProjector struct {
	classifier StatusClassifier
}

// NewViewProjector creates a projector using the given classifier.
func NewViewProjector(classifier StatusClassifier) ViewProjector {
	return ViewProjector{classifier: classifier}
}

// Project builds the DashboardView for one refresh cycle. The drivers slice
// is only consulted for admin sessions and may be nil otherwise.
func (p ViewProjector) Project(
	snapshot []*order.Order,
	drivers []viewer.Driver,
	session viewer.Session,
	generatedAt time.Time,
) (*DashboardView, error) {
	sets, err := p.classifier.Classify(snapshot, session)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Role:        session.Role(),
		Identity:    session.Identity(),
		GeneratedAt: generatedAt,
		Sets:        sets,
		Stats:       computeStats(snapshot),
	}

	if session.Role() == viewer.RoleAdmin {
		view.DriverLoads = computeDriverLoads(snapshot, drivers)
	}

	return view, nil
}

func computeStats(snapshot []*order.Order) Stats {
	var stats Stats
	stats.Total = len(snapshot)

	for _, o := range snapshot {
		status := o.Status()
		if status == order.StatusDelivered {
			stats.Delivered++
		}
		if status == order.StatusFailed {
			stats.Failed++
		}
		if !status.IsTerminal() {
			stats.Processing++
		}
		if status != order.StatusDelivered && status != order.StatusFailed && status != order.StatusCancelled {
			stats.InProgress++
		}
		if status.IsInTransit() {
			stats.InTransit++
		}
		if status.IsActivePickup() {
			stats.ActivePickup++
		}
	}

	return stats
}

// computeDriverLoads preserves the roster order returned by the backend.
func computeDriverLoads(snapshot []*order.Order, drivers []viewer.Driver) []DriverLoad {
	loads := make([]DriverLoad, len(drivers))
	for i, driver := range drivers {
		loads[i].Driver = driver
		for _, o := range snapshot {
			if o.IsAssignedTo(driver.Username) && !o.Status().IsTerminal() {
				loads[i].ActiveOrders++
			}
		}
	}
	return loads
}
