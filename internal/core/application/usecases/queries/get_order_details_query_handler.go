package queries

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// OrderFetcher is the narrow slice of the backend gateway the detail query
// needs: a single-order fetch including history.
type OrderFetcher interface {
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderDetailsQueryHandler fetches one order with its status history
// straight from the backend. Detail panels want the freshest record, so
// this bypasses the projected view.
type GetOrderDetailsQueryHandler struct {
	gateway OrderFetcher
}

// NewGetOrderDetailsQueryHandler creates a handler using the given gateway.
func NewGetOrderDetailsQueryHandler(gateway OrderFetcher) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{gateway: gateway}
}

// Handle fetches the order by identifier.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.gateway.GetOrder(ctx, query.OrderID())
}
