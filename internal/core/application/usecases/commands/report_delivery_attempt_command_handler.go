package commands

import (
	"context"

	"orderboard/internal/core/domain/model/order"
)

// ReportDeliveryAttemptCommandHandler handles the DELIVERY_ATTEMPTED special
// case and delegates the actual submission to the transition flow. The
// cancelled-prompt rule lives here: a dismissed prompt aborts the whole
// action before any validation or network call.
type ReportDeliveryAttemptCommandHandler struct {
	transitionHandler RequestTransitionCommandHandler
}

// NewReportDeliveryAttemptCommandHandler creates a handler delegating to the
// given transition handler.
func NewReportDeliveryAttemptCommandHandler(
	transitionHandler RequestTransitionCommandHandler,
) ReportDeliveryAttemptCommandHandler {
	return ReportDeliveryAttemptCommandHandler{
		transitionHandler: transitionHandler,
	}
}

// Handle submits the attempt as a DELIVERY_ATTEMPTED transition with the
// prompt text as the note. Returns ErrAttemptPromptCancelled without
// submitting anything when the prompt was dismissed.
func (h *ReportDeliveryAttemptCommandHandler) Handle(ctx context.Context, cmd ReportDeliveryAttemptCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Prompt().Submitted {
		return ErrAttemptPromptCancelled
	}

	transitionCmd, err := NewRequestTransitionCommand(cmd.OrderID(), order.StatusDeliveryAttempted, cmd.Prompt().Text)
	if err != nil {
		return err
	}

	return h.transitionHandler.Handle(ctx, transitionCmd)
}
