package commands

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/guard"
)

var (
	ErrReportDeliveryAttemptCommandIsNotConstructed = errors.New(
		"ReportDeliveryAttemptCommand must be created via NewReportDeliveryAttemptCommand constructor",
	)

	// ErrAttemptPromptCancelled is returned when the user dismissed the
	// reason prompt. The whole action is aborted: nothing is submitted,
	// not even with an empty reason.
	ErrAttemptPromptCancelled = errors.New("delivery attempt aborted: reason prompt was cancelled")
)

// PromptResult is the outcome of the interactive free-text prompt shown
// before a delivery attempt is reported. Submitted distinguishes "entered
// nothing and confirmed" from "cancelled the prompt".
type PromptResult struct {
	Text      string
	Submitted bool
}

// ReportDeliveryAttemptCommand reports a failed delivery attempt on an
// order. The server increments the attempt counter and resolves the
// outcome (back to the warehouse, or terminally failed once the budget is
// exhausted); the client never guesses that branch.
type ReportDeliveryAttemptCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	prompt  PromptResult

	guard guard.ConstructorGuard
}

// NewReportDeliveryAttemptCommand creates an attempt report carrying the
// prompt outcome. A cancelled prompt is accepted here and rejected by the
// handler before any gateway call.
func NewReportDeliveryAttemptCommand(orderID kernel.UUID, prompt PromptResult) (ReportDeliveryAttemptCommand, error) {
	cmd := ReportDeliveryAttemptCommand{
		prompt: prompt,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ReportDeliveryAttemptCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportDeliveryAttemptCommand) Validate() error {
	return c.guard.Validate(ErrReportDeliveryAttemptCommandIsNotConstructed)
}

// OrderID returns the identifier of the attempted order.
func (c ReportDeliveryAttemptCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Prompt returns the outcome of the reason prompt.
func (c ReportDeliveryAttemptCommand) Prompt() PromptResult {
	return c.prompt
}

func (c *ReportDeliveryAttemptCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
