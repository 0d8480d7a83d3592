package cmd

import (
	"context"
	"log/slog"

	httpadapter "servicedesk/internal/adapters/in/http"
	"servicedesk/internal/adapters/out/notify"
	"servicedesk/internal/adapters/out/postgres"
	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/application/usecases/queries"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/jobs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators of the service and builds
// every handler from them.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	hub            *notify.Hub
	notifier       *notify.Service
	proposalWorker *jobs.ProposalWorker
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		hub:        notify.NewHub(cfg.Notify.SubscriberBuffer),
	}
	c.notifier = notify.NewService(c.uowFactory, c.hub, notify.Options{
		Concurrency: cfg.Notify.Concurrency,
		Timeout:     cfg.Notify.Timeout,
	}, logger)
	c.proposalWorker = jobs.NewProposalWorker(c.CreateProposeOrderCommandHandler(), jobs.ProposalWorkerOptions{
		Workers:   cfg.Jobs.QueueWorkers,
		QueueSize: cfg.Jobs.QueueSize,
		Timeout:   cfg.Jobs.ProposeTimeout,
	}, logger)
	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateProposeOrderCommandHandler() commands.ProposeOrderCommandHandler {
	return commands.NewProposeOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.notifier, c.CreateProposeOrderCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReactivateOrderCommandHandler() commands.ReactivateOrderCommandHandler {
	return commands.NewReactivateOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.proposalWorker)
}

func (c *CompositionRoot) CreateAcceptProposalCommandHandler() commands.AcceptProposalCommandHandler {
	return commands.NewAcceptProposalCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRejectProposalCommandHandler() commands.RejectProposalCommandHandler {
	return commands.NewRejectProposalCommandHandler(c.orderUoWFactory(), c.notifier, c.proposalWorker)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	searching := FuncSearchingOrders(func(ctx context.Context, limit int) ([]kernel.ID, error) {
		return c.uowFactory.Create().OrderRepository().ListSearchingIDs(ctx, limit)
	})
	retry := jobs.NewProposalRetryJob(searching, c.proposalWorker,
		c.cfg.Jobs.RetrySchedule, c.cfg.Jobs.RetryBatchSize, c.logger)
	return jobs.NewJobManager(c.proposalWorker, retry)
}

func (c *CompositionRoot) CreateAuthenticator() *httpadapter.Authenticator {
	accounts := FuncAccountReader(func(ctx context.Context, id kernel.ID) (*account.Account, error) {
		return c.uowFactory.Create().AccountRepository().Get(ctx, id)
	})
	return httpadapter.NewAuthenticator(httpadapter.AuthConfig{
		Secret:    []byte(c.cfg.Auth.JWTSecret),
		Issuer:    c.cfg.Auth.Issuer,
		CacheSize: c.cfg.Auth.CacheSize,
		CacheTTL:  c.cfg.Auth.CacheTTL,
	}, accounts)
}

// CreateRouter builds the HTTP surface. doc is the loaded API contract used
// for request validation.
func (c *CompositionRoot) CreateRouter(doc *openapi3.T) (*echo.Echo, error) {
	validator, err := httpadapter.RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:              c.CreateCreateOrderCommandHandler(),
		UpdateOrder:              c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:              c.CreateDeleteOrderCommandHandler(),
		ReactivateOrder:          c.CreateReactivateOrderCommandHandler(),
		AcceptProposal:           c.CreateAcceptProposalCommandHandler(),
		RejectProposal:           c.CreateRejectProposalCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		MarkAllNotificationsRead: c.CreateMarkAllNotificationsReadCommandHandler(),
		GetOrder:                 c.CreateGetOrderQueryHandler(),
		ListOrders:               c.CreateListOrdersQueryHandler(),
		ListNotifications:        c.CreateListNotificationsQueryHandler(),
	}, c.hub)

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		RequestTimeout:       c.cfg.HTTP.RequestTimeout,
		ExposeInternalErrors: !c.cfg.IsProduction(),
		LogLevel:             c.cfg.Log.Level,
	}, server, c.CreateAuthenticator(), validator, c.ping, c.logger), nil
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close waits for notification deliveries still in flight.
func (c *CompositionRoot) Close(ctx context.Context) error {
	return c.notifier.Close(ctx)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncSearchingOrders func(ctx context.Context, limit int) ([]kernel.ID, error)

func (f FuncSearchingOrders) ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error) {
	return f(ctx, limit)
}

type FuncAccountReader func(ctx context.Context, id kernel.ID) (*account.Account, error)

func (f FuncAccountReader) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	return f(ctx, id)
}
