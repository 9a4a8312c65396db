package commands

import (
	"context"

	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/ports"
)

// CreateOrderCommandHandler submits new orders to the backend on behalf of
// the session's viewer. A successful submission schedules a refresh so the
// new order shows up in the next snapshot.
type CreateOrderCommandHandler struct {
	gateway OrderSubmitter
	trigger ports.RefreshTrigger
	session viewer.Session
}

// NewCreateOrderCommandHandler creates a handler bound to one viewer
// session.
func NewCreateOrderCommandHandler(
	gateway OrderSubmitter,
	trigger ports.RefreshTrigger,
	session viewer.Session,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		gateway: gateway,
		trigger: trigger,
		session: session,
	}
}

// Handle submits the order with the session identity as the originating
// client and requests a follow-up refresh.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.session.Validate(); err != nil {
		return err
	}

	request := ports.NewOrderRequest{
		ClientID:        h.session.Identity(),
		PickupAddress:   cmd.PickupAddress(),
		DeliveryAddress: cmd.DeliveryAddress(),
		SenderName:      cmd.SenderName(),
		ReceiverName:    cmd.ReceiverName(),
		Package:         cmd.Package(),
	}

	if _, err := h.gateway.CreateOrder(ctx, request); err != nil {
		return err
	}

	h.trigger.RequestRefresh(ports.RefreshTransition)
	return nil
}
