package http

import (
	"context"
	"net/http"

	"servicedesk/internal/adapters/out/notify"
	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/application/usecases/queries"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handler runs a command that only reports failure.
type Handler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases the API exposes.
type Handlers struct {
	CreateOrder              ResultHandler[commands.CreateOrderCommand, kernel.ID]
	UpdateOrder              Handler[commands.UpdateOrderCommand]
	DeleteOrder              Handler[commands.DeleteOrderCommand]
	ReactivateOrder          Handler[commands.ReactivateOrderCommand]
	AcceptProposal           Handler[commands.AcceptProposalCommand]
	RejectProposal           Handler[commands.RejectProposalCommand]
	MarkNotificationRead     Handler[commands.MarkNotificationReadCommand]
	MarkAllNotificationsRead ResultHandler[commands.MarkAllNotificationsReadCommand, int64]

	GetOrder          ResultHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders        ResultHandler[queries.ListOrdersQuery, queries.ListOrdersQueryResponse]
	ListNotifications ResultHandler[queries.ListNotificationsQuery, queries.ListNotificationsQueryResponse]
}

// Server translates HTTP requests into commands and queries. Every handler
// expects the authentication middleware to have stored the actor.
type Server struct {
	handlers Handlers
	hub      *notify.Hub
}

func NewServer(handlers Handlers, hub *notify.Hub) *Server {
	return &Server{handlers: handlers, hub: hub}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req NewOrderRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		p, pointErr := kernel.NewGeoPoint(req.Location.Lat, req.Location.Lng)
		if pointErr != nil {
			return pointErr
		}
		location = &p
	}

	cmd, err := commands.NewCreateOrderCommand(actor, req.Description, req.address(), req.Zone, location)
	if err != nil {
		return err
	}

	id, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusCreated, actor, id)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	page, err := bindPage(c)
	if err != nil {
		return err
	}

	// optional parameters bind into pointers and stay nil when absent
	var (
		state           *string
		includeInactive *bool
	)
	if err = runtime.BindQueryParameter("form", true, false, "state", c.QueryParams(), &state); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("state", err)
	}
	if err = runtime.BindQueryParameter(
		"form", true, false, "include_inactive", c.QueryParams(), &includeInactive,
	); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("include_inactive", err)
	}

	query, err := queries.NewListOrdersQuery(actor, page, deref(state), deref(includeInactive))
	if err != nil {
		return err
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderPage(result))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// UpdateOrder handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrder(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}

	var req OrderPatchRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateOrderCommand(actor, id, req.patch())
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ReactivateOrder handles POST /api/v1/orders/{id}/reactivate.
func (s *Server) ReactivateOrder(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReactivateOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.ReactivateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// AcceptProposal handles POST /api/v1/orders/{id}/accept.
func (s *Server) AcceptProposal(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptProposalCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.AcceptProposal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(c, http.StatusOK, actor, id)
}

// RejectProposal handles POST /api/v1/orders/{id}/reject. The order leaves
// the caller's view once rejected, so nothing is returned.
func (s *Server) RejectProposal(c echo.Context) error {
	actor, id, err := s.orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectProposalCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.RejectProposal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	page, err := bindPage(c)
	if err != nil {
		return err
	}

	var read *bool
	if err = runtime.BindQueryParameter("form", true, false, "read", c.QueryParams(), &read); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("read", err)
	}

	query, err := queries.NewListNotificationsQuery(actor.ID(), page, read)
	if err != nil {
		return err
	}

	result, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNotificationPage(result))
}

// MarkNotificationRead handles PATCH /api/v1/notifications/{id}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var raw string
	if err = runtime.BindStyledParameterWithLocation(
		"simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &raw,
	); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(id, actor.ID())
	if err != nil {
		return err
	}
	if err = s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles PATCH /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkAllNotificationsReadCommand(actor.ID())
	if err != nil {
		return err
	}
	updated, err := s.handlers.MarkAllNotificationsRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MarkAllReadResponse{Updated: updated})
}

func (s *Server) orderRequest(c echo.Context) (account.Actor, kernel.ID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return account.Actor{}, 0, err
	}

	var id int64
	if err = runtime.BindStyledParameterWithLocation(
		"simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &id,
	); err != nil {
		return account.Actor{}, 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return actor, kernel.ID(id), nil
}

func (s *Server) respondWithOrder(c echo.Context, status int, actor account.Actor, id kernel.ID) error {
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(status, toOrderResponse(view))
}

func bindPage(c echo.Context) (kernel.Page, error) {
	var number, size *int
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &number); err != nil {
		return kernel.Page{}, errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &size); err != nil {
		return kernel.Page{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	return kernel.NewPage(deref(number), deref(size))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
