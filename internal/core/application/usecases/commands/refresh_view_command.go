package commands

import (
	"errors"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/guard"
)

var (
	ErrRefreshViewCommandIsNotConstructed = errors.New(
		"RefreshViewCommand must be created via NewRefreshViewCommand constructor",
	)
	ErrRefreshSourceIsInvalid = errors.New("refresh source must be manual, timer, push, or transition")
)

// RefreshViewCommand asks for one full refresh cycle: fetch the snapshot,
// classify it, project it, and install the result. The source records which
// update channel requested the cycle.
//
// Example:
//
//	cmd, err := NewRefreshViewCommand(ports.RefreshManual)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // last-known-good view stays in place
//	}
type RefreshViewCommand struct { //nolint:recvcheck //using for validation
	source ports.RefreshSource

	guard guard.ConstructorGuard
}

// NewRefreshViewCommand creates a refresh command for the given source.
func NewRefreshViewCommand(source ports.RefreshSource) (RefreshViewCommand, error) {
	cmd := RefreshViewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSource(source); err != nil {
		return RefreshViewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshViewCommand) Validate() error {
	return c.guard.Validate(ErrRefreshViewCommandIsNotConstructed)
}

// Source returns the update channel that requested the refresh.
func (c RefreshViewCommand) Source() ports.RefreshSource {
	return c.source
}

func (c *RefreshViewCommand) setSource(source ports.RefreshSource) error {
	switch source {
	case ports.RefreshManual, ports.RefreshTimer, ports.RefreshPush, ports.RefreshTransition:
		c.source = source
		return nil
	default:
		return ErrRefreshSourceIsInvalid
	}
}
