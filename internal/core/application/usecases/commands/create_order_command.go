package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand submits a new order from a client dashboard. The
// backend owns the created record; the dashboard only ever reads it back
// from subsequent snapshots.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    "12 Depot Lane", "7 Harbor Road",
//	    "Acme Ltd", "Jamie Doe",
//	    order.Package{Description: "Electronics", WeightKG: 2.5},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	pickupAddress   string
	deliveryAddress string
	senderName      string
	receiverName    string
	pkg             order.Package

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates an order submission. Both addresses are
// required; names may be empty and the package weight must not be negative.
func NewCreateOrderCommand(
	pickupAddress, deliveryAddress string,
	senderName, receiverName string,
	pkg order.Package,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		senderName:   senderName,
		receiverName: receiverName,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAddresses(pickupAddress, deliveryAddress),
		cmd.setPackage(pkg),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// PickupAddress returns the sender-side address.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the receiver-side address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// SenderName returns the display name of the sending party.
func (c CreateOrderCommand) SenderName() string {
	return c.senderName
}

// ReceiverName returns the display name of the receiving party.
func (c CreateOrderCommand) ReceiverName() string {
	return c.receiverName
}

// Package returns the parcel details.
func (c CreateOrderCommand) Package() order.Package {
	return c.pkg
}

func (c *CreateOrderCommand) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.Package) error {
	if pkg.WeightKG < 0 {
		return errs.NewValueIsInvalidError("package weight")
	}
	c.pkg = pkg
	return nil
}
