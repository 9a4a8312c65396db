package commands

import (
	"context"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// RequestTransitionCommandHandler validates a status-transition request
// against the transition policy and, only when the policy permits it,
// forwards it to the backend. A policy rejection fails fast with no network
// call. A server rejection surfaces the server's reason untouched; local
// state is never mutated either way — the follow-up refresh carries the
// authoritative result.
type RequestTransitionCommandHandler struct {
	gateway   TransitionRequester
	viewStore ports.ViewStore
	trigger   ports.RefreshTrigger
	session   viewer.Session
}

// NewRequestTransitionCommandHandler creates a handler bound to one viewer
// session.
func NewRequestTransitionCommandHandler(
	gateway TransitionRequester,
	viewStore ports.ViewStore,
	trigger ports.RefreshTrigger,
	session viewer.Session,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		gateway:   gateway,
		viewStore: viewStore,
		trigger:   trigger,
		session:   session,
	}
}

// Handle looks the order up in the current view, applies the transition
// policy, and submits the request. Success schedules a refresh so the
// dashboard picks up the authoritative new state.
func (h *RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.session.Validate(); err != nil {
		return err
	}

	view := h.viewStore.Current()
	if view == nil {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID().String())
	}

	o := view.FindOrder(cmd.OrderID())
	if o == nil {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID().String())
	}

	actor := transitionActor(h.session, o)
	if err := order.ValidateRequest(actor, o.Status(), cmd.Target()); err != nil {
		return err
	}

	if _, err := h.gateway.RequestTransition(ctx, cmd.OrderID(), cmd.Target(), cmd.Note()); err != nil {
		return err
	}

	h.trigger.RequestRefresh(ports.RefreshTransition)
	return nil
}

// transitionActor derives the capacity in which the viewer acts on this
// order. A driver holding both assignments acts in the capacity matching
// the order's current phase.
func transitionActor(session viewer.Session, o *order.Order) order.Actor {
	switch session.Role() {
	case viewer.RoleAdmin:
		return order.ActorAdmin
	case viewer.RoleDriver:
		if o.IsPickupAssignedTo(session.Identity()) && o.Status().IsActivePickup() {
			return order.ActorPickupDriver
		}
		if o.IsDeliveryAssignedTo(session.Identity()) && o.Status().IsActiveDelivery() {
			return order.ActorDeliveryDriver
		}
		return order.ActorNone
	default:
		return order.ActorNone
	}
}
