package queries_test

import (
	"context"
	"testing"
	"time"

	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderFetcher struct{ mock.Mock }

func (m *MockOrderFetcher) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func TestNewGetOrderDetailsQuery(t *testing.T) {
	t.Run("should create a valid query", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetOrderDetailsQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, id.IsEqual(query.OrderID()))
	})

	t.Run("should reject a zero-value order ID", func(t *testing.T) {
		_, err := queries.NewGetOrderDetailsQuery(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetOrderDetailsQuery

		assert.Equal(t, queries.ErrGetOrderDetailsQueryIsNotConstructed, query.Validate())
	})
}

func TestGetOrderDetailsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("should fetch the order with history", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:                  id,
			ClientID:            "client1",
			Status:              order.StatusPickedUp,
			PickupAddress:       "12 Depot Lane",
			DeliveryAddress:     "7 Harbor Road",
			PickupDriverID:      "d1",
			MaxDeliveryAttempts: 3,
			CreatedAt:           base,
			History: []order.HistoryEntry{
				{Status: order.StatusPickingUp, Detail: "driver en route", Timestamp: base},
				{Status: order.StatusPickedUp, Detail: "package collected", Timestamp: base.Add(time.Hour)},
			},
		})
		require.NoError(t, err)

		gateway := &MockOrderFetcher{}
		gateway.On("GetOrder", ctx, id).Return(o, nil).Once()

		handler := queries.NewGetOrderDetailsQueryHandler(gateway)
		query, err := queries.NewGetOrderDetailsQuery(id)
		require.NoError(t, err)

		got, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Len(t, got.History(), 2)
		gateway.AssertExpectations(t)
	})

	t.Run("should pass the gateway error through", func(t *testing.T) {
		gateway := &MockOrderFetcher{}
		gateway.On("GetOrder", ctx, id).
			Return(nil, errs.NewObjectNotFoundError("orderID", id.String())).Once()

		handler := queries.NewGetOrderDetailsQueryHandler(gateway)
		query, err := queries.NewGetOrderDetailsQuery(id)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
