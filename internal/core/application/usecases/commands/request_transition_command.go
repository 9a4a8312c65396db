package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
)

// RequestTransitionCommand asks the server to move an order to a target
// status, with an optional free-text note. The command is validated against
// the transition policy before any network call; the server re-validates
// and remains authoritative.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(orderID, order.StatusPickingUp, "")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // policy rejection (no network call) or server rejection
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a transition request. The order ID
// must be valid and the target must belong to the status vocabulary. The
// note may be empty.
func NewRequestTransitionCommand(orderID kernel.UUID, target order.Status, note string) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c RequestTransitionCommand) Target() order.Status {
	return c.target
}

// Note returns the optional free-text note, possibly empty.
func (c RequestTransitionCommand) Note() string {
	return c.note
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
