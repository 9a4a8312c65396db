package commands_test

import (
	"testing"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportDeliveryAttemptCommandHandler_Handle_Submitted(t *testing.T) {
	ctx := t.Context()
	session := mustSession(t, "d1", viewer.RoleDriver)
	o := testOrder(t, kernel.NewUUID(), order.StatusOutForDelivery, "", "d1")
	store := storeWithView(t, session, o)

	gateway := &MockTransitionGateway{}
	trigger := &MockRefreshTrigger{}
	attempted := testOrder(t, o.ID(), order.StatusDeliveryAttempted, "", "d1")
	gateway.On("RequestTransition", ctx, o.ID(), order.StatusDeliveryAttempted, "nobody home").
		Return(attempted, nil).Once()
	trigger.On("RequestRefresh", ports.RefreshTransition).Once()

	handler := commands.NewReportDeliveryAttemptCommandHandler(
		commands.NewRequestTransitionCommandHandler(gateway, store, trigger, session))
	cmd, err := commands.NewReportDeliveryAttemptCommand(o.ID(), commands.PromptResult{Text: "nobody home", Submitted: true})
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	gateway.AssertExpectations(t)
	trigger.AssertExpectations(t)
}

func TestReportDeliveryAttemptCommandHandler_Handle_CancelledPromptAborts(t *testing.T) {
	ctx := t.Context()
	session := mustSession(t, "d1", viewer.RoleDriver)
	o := testOrder(t, kernel.NewUUID(), order.StatusOutForDelivery, "", "d1")
	store := storeWithView(t, session, o)

	gateway := &MockTransitionGateway{}
	trigger := &MockRefreshTrigger{}
	handler := commands.NewReportDeliveryAttemptCommandHandler(
		commands.NewRequestTransitionCommandHandler(gateway, store, trigger, session))

	cmd, err := commands.NewReportDeliveryAttemptCommand(o.ID(), commands.PromptResult{Text: "", Submitted: false})
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAttemptPromptCancelled)
	gateway.AssertNotCalled(t, "RequestTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	trigger.AssertNotCalled(t, "RequestRefresh", mock.Anything)
}

func TestReportDeliveryAttemptCommandHandler_Handle_EmptyReasonSubmitted(t *testing.T) {
	// Confirming the prompt with no text is a valid submission; only a
	// cancelled prompt aborts.
	ctx := t.Context()
	session := mustSession(t, "d1", viewer.RoleDriver)
	o := testOrder(t, kernel.NewUUID(), order.StatusOutForDelivery, "", "d1")
	store := storeWithView(t, session, o)

	gateway := &MockTransitionGateway{}
	trigger := &MockRefreshTrigger{}
	attempted := testOrder(t, o.ID(), order.StatusDeliveryAttempted, "", "d1")
	gateway.On("RequestTransition", ctx, o.ID(), order.StatusDeliveryAttempted, "").
		Return(attempted, nil).Once()
	trigger.On("RequestRefresh", ports.RefreshTransition).Once()

	handler := commands.NewReportDeliveryAttemptCommandHandler(
		commands.NewRequestTransitionCommandHandler(gateway, store, trigger, session))
	cmd, err := commands.NewReportDeliveryAttemptCommand(o.ID(), commands.PromptResult{Text: "", Submitted: true})
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	gateway.AssertExpectations(t)
}
