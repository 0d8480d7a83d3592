package queries

import (
	"errors"
	"strings"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through the orders an actor may see, newest first.
//
// Example:
//
//	page, _ := kernel.NewPage(2, 20)
//	query, err := NewListOrdersQuery(actor, page, "in_progress", false)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, query)
//	fmt.Printf("page %d of %d\n", result.CurrentPage, result.TotalPages)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actor           account.Actor
	page            kernel.Page
	state           *order.Status
	includeInactive bool
	guard           guard.ConstructorGuard
}

// NewListOrdersQuery builds a listing query. An empty state lists every
// state; includeInactive only has an effect for platform admins.
func NewListOrdersQuery(
	actor account.Actor,
	page kernel.Page,
	state string,
	includeInactive bool,
) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		includeInactive: includeInactive,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		page.Validate(),
		q.setState(state),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	q.actor = actor
	q.page = page
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() account.Actor {
	return q.actor
}

func (q ListOrdersQuery) Page() kernel.Page {
	return q.page
}

func (q ListOrdersQuery) State() *order.Status {
	return q.state
}

func (q ListOrdersQuery) IncludeInactive() bool {
	return q.includeInactive
}

func (q *ListOrdersQuery) setState(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	s, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	q.state = &s
	return nil
}

// ListOrdersQueryResponse is one page of orders plus paging totals.
type ListOrdersQueryResponse struct {
	Items        []OrderView
	TotalResults int64
	TotalPages   int
	CurrentPage  int
}
