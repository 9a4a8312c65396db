package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Actor identifies the capacity in which a viewer requests a transition.
// It is derived from the viewer's role and assignment on the order, not
// from the role alone: a driver acts as ActorPickupDriver only on orders
// that carry their pickup assignment.
type Actor int

const (
	// ActorNone is a viewer with no transition rights on the order.
	ActorNone Actor = iota

	// ActorPickupDriver is the driver holding the pickup assignment.
	ActorPickupDriver

	// ActorDeliveryDriver is the driver holding the delivery assignment.
	ActorDeliveryDriver

	// ActorAdmin may cancel any non-terminal order.
	ActorAdmin
)

// String returns a human-readable actor name for error messages and logs.
func (a Actor) String() string {
	switch a {
	case ActorPickupDriver:
		return "pickup driver"
	case ActorDeliveryDriver:
		return "delivery driver"
	case ActorAdmin:
		return "admin"
	default:
		return "none"
	}
}

// pickupTransitions are the steps a pickup driver may request.
var pickupTransitions = map[Status]map[Status]bool{
	StatusPickupAssigned: {StatusPickingUp: true},
	StatusPickingUp:      {StatusPickedUp: true},
	StatusPickedUp:       {StatusAtWarehouse: true},
}

// deliveryTransitions are the steps a delivery driver may request. The
// DELIVERY_ATTEMPTED branch (back to AT_WAREHOUSE or FAILED) is resolved
// exclusively by the server and is therefore absent here.
var deliveryTransitions = map[Status]map[Status]bool{
	StatusAtWarehouse:    {StatusOutForDelivery: true},
	StatusOutForDelivery: {StatusDelivered: true, StatusDeliveryAttempted: true},
}

// CanRequest reports whether the actor may request moving an order from one
// status to another. This is the advisory client-side check: the server
// re-validates every request and remains the sole authority.
func CanRequest(actor Actor, from, to Status) bool {
	switch actor {
	case ActorPickupDriver:
		return pickupTransitions[from][to]
	case ActorDeliveryDriver:
		return deliveryTransitions[from][to]
	case ActorAdmin:
		return to == StatusCancelled && !from.IsTerminal()
	default:
		return false
	}
}

// ValidateRequest rejects a transition request that is not in the permitted
// set for the actor. A rejection here means no network call is made.
func ValidateRequest(actor Actor, from, to Status) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if !CanRequest(actor, from, to) {
		return errs.NewValueIsInvalidErrorWithCause("transition is not permitted",
			fmt.Errorf("%s may not move an order from %s to %s", actor, from, to))
	}
	return nil
}

// RequestableTargets lists the statuses the actor may request from the
// current one, in pipeline order. Used by dashboards to decide which action
// buttons to offer.
func RequestableTargets(actor Actor, from Status) []Status {
	ordered := []Status{
		StatusPickingUp,
		StatusPickedUp,
		StatusAtWarehouse,
		StatusOutForDelivery,
		StatusDelivered,
		StatusDeliveryAttempted,
		StatusCancelled,
	}

	var targets []Status
	for _, to := range ordered {
		if CanRequest(actor, from, to) {
			targets = append(targets, to)
		}
	}
	return targets
}
