package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as reported by the
// backend. It is a closed string enum: values outside the vocabulary below
// never enter the domain model (the adapter quarantines the whole order).
//
// Main pipeline:
//
//	PENDING → CMS_REGISTERED → WMS_RECEIVED → ROUTE_OPTIMIZED → READY
//	  → PICKUP_ASSIGNED → PICKING_UP → PICKED_UP → AT_WAREHOUSE
//	  → OUT_FOR_DELIVERY → {DELIVERED | DELIVERY_ATTEMPTED}
//
// DELIVERY_ATTEMPTED is transient: the server either returns the order to
// AT_WAREHOUSE (attempts remaining) or finishes it as FAILED (attempts
// exhausted). CANCELLED is reachable from every non-terminal state by an
// admin. DELIVERED, FAILED, and CANCELLED are terminal.
type Status string

const (
	// StatusPending is the initial state of a freshly submitted order,
	// before the intake saga has registered it anywhere.
	StatusPending Status = "PENDING"

	// StatusCMSRegistered means the order is registered in the carrier
	// management system. Applied only by the server-side saga.
	StatusCMSRegistered Status = "CMS_REGISTERED"

	// StatusWMSReceived means the warehouse has received the order record.
	StatusWMSReceived Status = "WMS_RECEIVED"

	// StatusRouteOptimized means a route has been computed for the order.
	StatusRouteOptimized Status = "ROUTE_OPTIMIZED"

	// StatusReady means the order is ready for pickup assignment.
	StatusReady Status = "READY"

	// StatusPickupAssigned means a pickup driver has been assigned.
	StatusPickupAssigned Status = "PICKUP_ASSIGNED"

	// StatusPickingUp means the pickup driver is en route to the sender.
	StatusPickingUp Status = "PICKING_UP"

	// StatusPickedUp means the package is in the pickup driver's custody.
	StatusPickedUp Status = "PICKED_UP"

	// StatusAtWarehouse means the package is at the warehouse awaiting
	// (or re-awaiting, after a failed attempt) delivery dispatch.
	StatusAtWarehouse Status = "AT_WAREHOUSE"

	// StatusOutForDelivery means the delivery driver is en route to the
	// receiver.
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"

	// StatusDeliveryAttempted is the transient state recorded when a
	// delivery attempt did not reach the receiver. The server resolves it
	// to AT_WAREHOUSE or FAILED based on the attempt counter; the client
	// never computes that branch locally.
	StatusDeliveryAttempted Status = "DELIVERY_ATTEMPTED"

	// StatusDelivered is the terminal success state.
	StatusDelivered Status = "DELIVERED"

	// StatusFailed is the terminal state after delivery attempts are
	// exhausted.
	StatusFailed Status = "FAILED"

	// StatusCancelled is the terminal state after an admin cancellation.
	StatusCancelled Status = "CANCELLED"
)

// validStatuses is the closed vocabulary. Grown only together with the
// backend enum.
var validStatuses = map[Status]bool{
	StatusPending:           true,
	StatusCMSRegistered:     true,
	StatusWMSReceived:       true,
	StatusRouteOptimized:    true,
	StatusReady:             true,
	StatusPickupAssigned:    true,
	StatusPickingUp:         true,
	StatusPickedUp:          true,
	StatusAtWarehouse:       true,
	StatusOutForDelivery:    true,
	StatusDeliveryAttempted: true,
	StatusDelivered:         true,
	StatusFailed:            true,
	StatusCancelled:         true,
}

// ParseStatus converts a raw string from the wire into a Status. Returns an
// error for any value outside the vocabulary; callers are expected to
// quarantine the surrounding order rather than propagate the error.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the Status belongs to the closed vocabulary.
func (s Status) Validate() error {
	if !validStatuses[s] {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a recognized order status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// IsInTransit reports whether the package is in carrier custody: picked up,
// at the warehouse, out for delivery, or between failed attempts.
func (s Status) IsInTransit() bool {
	switch s {
	case StatusPickedUp, StatusAtWarehouse, StatusOutForDelivery, StatusDeliveryAttempted:
		return true
	default:
		return false
	}
}

// IsActivePickup reports whether the order sits in the pickup phase of the
// pipeline (assigned through picked up).
func (s Status) IsActivePickup() bool {
	switch s {
	case StatusPickupAssigned, StatusPickingUp, StatusPickedUp:
		return true
	default:
		return false
	}
}

// IsActiveDelivery reports whether the order sits in the delivery phase of
// the pipeline (warehouse through attempted).
func (s Status) IsActiveDelivery() bool {
	switch s {
	case StatusAtWarehouse, StatusOutForDelivery, StatusDeliveryAttempted:
		return true
	default:
		return false
	}
}

// IsAwaitingAssignment reports whether the order is visible to drivers ahead
// of pickup assignment. These orders are never actionable by a driver.
func (s Status) IsAwaitingAssignment() bool {
	switch s {
	case StatusWMSReceived, StatusRouteOptimized, StatusReady:
		return true
	default:
		return false
	}
}
