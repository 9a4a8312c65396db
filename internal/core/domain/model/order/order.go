package order

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the RestoreOrder factory method. This ensures all
	// mirrored orders passed validation at the adapter boundary.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// HistoryEntry is one record of the order's append-only status history.
type HistoryEntry struct {
	Status    Status
	Detail    string
	Timestamp time.Time
}

// Package describes the parcel being shipped.
type Package struct {
	Description string
	WeightKG    float64
}

// RestoreParams carries the raw field values of a backend order record into
// RestoreOrder. Adapters fill it from the wire representation.
type RestoreParams struct {
	ID                  kernel.UUID
	ClientID            string
	Status              Status
	PickupAddress       string
	DeliveryAddress     string
	SenderName          string
	ReceiverName        string
	Package             Package
	PickupDriverID      string
	DeliveryDriverID    string
	DeliveryNotes       string
	DeliveryAttempts    int
	MaxDeliveryAttempts int
	CreatedAt           time.Time
	History             []HistoryEntry
}

// Order is the client-side, read-only mirror of a backend order record. It
// is restored from a snapshot, never mutated: a later snapshot replaces it
// wholesale. All state changes happen server-side through validated
// transition requests.
//
// Order upholds these invariants:
//   - The identifier is valid, immutable, and unique
//   - The status belongs to the closed vocabulary
//   - 0 ≤ delivery attempts ≤ maximum attempts, maximum ≥ 1
//   - History timestamps are monotonically non-decreasing, and the last
//     entry's status equals the current status
//
// An order violating any invariant is quarantined at the adapter boundary
// and never enters a working set.
type Order struct {
	id                  kernel.UUID
	clientID            string
	status              Status
	pickupAddress       string
	deliveryAddress     string
	senderName          string
	receiverName        string
	pkg                 Package
	pickupDriverID      string
	deliveryDriverID    string
	deliveryNotes       string
	deliveryAttempts    int
	maxDeliveryAttempts int
	createdAt           time.Time
	history             []HistoryEntry

	isConstructed bool
}

// RestoreOrder reconstructs an Order mirror from backend data, validating
// every invariant. This is the only way to create an Order.
//
// Returns the restored order, or a joined validation error naming every
// violated invariant. Callers at the adapter boundary quarantine the record
// on error instead of failing the whole snapshot.
func RestoreOrder(params RestoreParams) (*Order, error) {
	o := &Order{
		senderName:    params.SenderName,
		receiverName:  params.ReceiverName,
		pkg:           params.Package,
		deliveryNotes: params.DeliveryNotes,
		createdAt:     params.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setClientID(params.ClientID),
		o.setStatus(params.Status),
		o.setAddresses(params.PickupAddress, params.DeliveryAddress),
		o.setDrivers(params.PickupDriverID, params.DeliveryDriverID),
		o.setAttempts(params.DeliveryAttempts, params.MaxDeliveryAttempts),
		o.setHistory(params.History, params.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was properly constructed through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's stable, opaque identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DisplayID returns the derived human-friendly identifier (e.g. "#6BA7B810").
// Never used as a key.
func (o *Order) DisplayID() string {
	return o.id.Short()
}

// ClientID returns the identity of the originating client.
func (o *Order) ClientID() string {
	return o.clientID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PickupAddress returns the sender-side address.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DeliveryAddress returns the receiver-side address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// SenderName returns the display name of the sending party.
func (o *Order) SenderName() string {
	return o.senderName
}

// ReceiverName returns the display name of the receiving party.
func (o *Order) ReceiverName() string {
	return o.receiverName
}

// Package returns the parcel details.
func (o *Order) Package() Package {
	return o.pkg
}

// PickupDriverID returns the pickup assignment, or "" when unassigned.
func (o *Order) PickupDriverID() string {
	return o.pickupDriverID
}

// DeliveryDriverID returns the delivery assignment, or "" when unassigned.
func (o *Order) DeliveryDriverID() string {
	return o.deliveryDriverID
}

// DeliveryNotes returns the latest free-text note attached by a driver.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// DeliveryAttempts returns how many delivery attempts have been recorded.
func (o *Order) DeliveryAttempts() int {
	return o.deliveryAttempts
}

// MaxDeliveryAttempts returns the attempt budget before the order fails.
func (o *Order) MaxDeliveryAttempts() int {
	return o.maxDeliveryAttempts
}

// AttemptsExhausted reports whether the attempt counter has reached its
// maximum. Display-only: the FAILED resolution is always the server's call.
func (o *Order) AttemptsExhausted() bool {
	return o.deliveryAttempts >= o.maxDeliveryAttempts
}

// CreatedAt returns the server-side creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// History returns the append-only status history, oldest first. The returned
// slice is a copy; mutating it does not affect the order.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// IsPickupAssignedTo reports whether the driver holds the pickup assignment.
func (o *Order) IsPickupAssignedTo(driverID string) bool {
	return driverID != "" && o.pickupDriverID == driverID
}

// IsDeliveryAssignedTo reports whether the driver holds the delivery
// assignment.
func (o *Order) IsDeliveryAssignedTo(driverID string) bool {
	return driverID != "" && o.deliveryDriverID == driverID
}

// IsAssignedTo reports whether the driver holds either assignment.
func (o *Order) IsAssignedTo(driverID string) bool {
	return o.IsPickupAssignedTo(driverID) || o.IsDeliveryAssignedTo(driverID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID string) error {
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientID")
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.pickupAddress = pickup
	o.deliveryAddress = delivery
	return nil
}

func (o *Order) setDrivers(pickupDriverID, deliveryDriverID string) error {
	o.pickupDriverID = pickupDriverID
	o.deliveryDriverID = deliveryDriverID
	return nil
}

func (o *Order) setAttempts(attempts, maxAttempts int) error {
	if maxAttempts < 1 {
		return errs.NewValueIsOutOfRangeError("maxDeliveryAttempts", maxAttempts, 1, nil)
	}
	if attempts < 0 || attempts > maxAttempts {
		return errs.NewValueIsOutOfRangeError("deliveryAttempts", attempts, 0, maxAttempts)
	}
	o.deliveryAttempts = attempts
	o.maxDeliveryAttempts = maxAttempts
	return nil
}

func (o *Order) setHistory(history []HistoryEntry, current Status) error {
	for i, entry := range history {
		if err := entry.Status.Validate(); err != nil {
			return err
		}
		if i > 0 && entry.Timestamp.Before(history[i-1].Timestamp) {
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("entry %d timestamp precedes entry %d", i, i-1))
		}
	}
	if len(history) > 0 && history[len(history)-1].Status != current {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("last history status %s does not match current status %s",
				history[len(history)-1].Status, current))
	}
	o.history = make([]HistoryEntry, len(history))
	copy(o.history, history)
	return nil
}
