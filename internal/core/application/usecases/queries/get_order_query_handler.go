package queries

import (
	"context"

	"servicedesk/internal/core/ports"
)

// GetOrderQueryHandler loads an order outside any transaction and checks
// that the actor may see it. Hidden orders are reported as not found and
// foreign ones as forbidden.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if err = o.CanView(query.Actor()); err != nil {
		return OrderView{}, err
	}

	return NewOrderView(o), nil
}
