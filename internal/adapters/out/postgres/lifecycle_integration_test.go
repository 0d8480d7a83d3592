package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"servicedesk/internal/adapters/out/notify"
	postgresadapter "servicedesk/internal/adapters/out/postgres"
	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/domain/services"
	"servicedesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	lifecycleClient kernel.ID = 10
	lifecycleW      kernel.ID = 20
	lifecycleW2     kernel.ID = 21
	lifecycleAdmin  kernel.ID = 30
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

// recordingScheduler keeps queued proposal attempts so the test decides
// when they run.
type recordingScheduler struct {
	mu     sync.Mutex
	queued []kernel.ID
}

func (s *recordingScheduler) Schedule(orderID kernel.ID, _ commands.ProposalTrigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, orderID)
}

func (s *recordingScheduler) drain() []kernel.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.queued
	s.queued = nil
	return out
}

// OrderLifecycleIntegrationTestSuite drives orders through the command
// handlers with the real store and notifier.
type OrderLifecycleIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	factory   *postgresadapter.GormUnitOfWorkFactory
	notifier  *notify.Service
	scheduler *recordingScheduler

	create  commands.CreateOrderCommandHandler
	propose commands.ProposeOrderCommandHandler
	accept  commands.AcceptProposalCommandHandler
	reject  commands.RejectProposalCommandHandler
	update  commands.UpdateOrderCommandHandler
}

func (suite *OrderLifecycleIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(ctx, db))
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *OrderLifecycleIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, accounts, notifications RESTART IDENTITY").Error
	suite.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.notifier = notify.NewService(suite.factory, notify.NewHub(0), notify.Options{}, logger)
	suite.scheduler = &recordingScheduler{}

	uows := uowFactoryFunc(func() commands.UoW { return suite.factory.Create() })
	suite.propose = commands.NewProposeOrderCommandHandler(uows, suite.notifier)
	suite.create = commands.NewCreateOrderCommandHandler(uows, suite.notifier, suite.propose, logger)
	suite.accept = commands.NewAcceptProposalCommandHandler(uows, suite.notifier)
	suite.reject = commands.NewRejectProposalCommandHandler(uows, suite.notifier, suite.scheduler)
	suite.update = commands.NewUpdateOrderCommandHandler(uows, suite.notifier)

	suite.seed(lifecycleClient, account.RoleClient)
	suite.seed(lifecycleAdmin, account.RolePlatformAdmin)
}

func (suite *OrderLifecycleIntegrationTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.Require().NoError(suite.notifier.Close(ctx))
}

func (suite *OrderLifecycleIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderLifecycleIntegrationTestSuite) TestProposeRejectRetryAccept() {
	ctx := context.Background()
	suite.seed(lifecycleW, account.RoleWorker)

	// 1. the only worker in the zone gets the proposal
	id := suite.createOrder(ctx)
	o := suite.load(ctx, id)
	suite.Equal(order.AwaitingAcceptance, o.Status())
	suite.Equal(lifecycleW, *o.ProposedWorkerID())

	// 2. the worker declines
	rejectCmd, err := commands.NewRejectProposalCommand(suite.actor(lifecycleW, account.RoleWorker), id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reject.Handle(ctx, rejectCmd))

	o = suite.load(ctx, id)
	suite.Equal(order.Searching, o.Status())
	suite.Equal([]kernel.ID{lifecycleW}, o.Rejecters().IDs())
	suite.Equal([]kernel.ID{id}, suite.scheduler.drain())

	// 3. nobody else is eligible
	err = suite.runProposal(ctx, id, commands.TriggerRejection)
	suite.Require().ErrorIs(err, services.ErrNoCandidatesFound)

	o = suite.load(ctx, id)
	suite.Equal(order.Searching, o.Status())
	suite.Nil(o.ProposedWorkerID())
	suite.Nil(o.ProposedOrganizationID())

	// 4. a second worker joins and the retry picks them
	suite.seed(lifecycleW2, account.RoleWorker)
	suite.Require().NoError(suite.runProposal(ctx, id, commands.TriggerRetry))

	o = suite.load(ctx, id)
	suite.Equal(order.AwaitingAcceptance, o.Status())
	suite.Equal(lifecycleW2, *o.ProposedWorkerID())

	// 5. the second worker accepts
	acceptCmd, err := commands.NewAcceptProposalCommand(suite.actor(lifecycleW2, account.RoleWorker), id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.accept.Handle(ctx, acceptCmd))

	o = suite.load(ctx, id)
	suite.Equal(order.Assigned, o.Status())
	suite.Equal(lifecycleW2, *o.WorkerID())
	suite.Nil(o.ProposedWorkerID())

	suite.flushNotifications()
	suite.Equal(int64(1), suite.inboxCount(lifecycleW2, notification.KindProposalReceived))
	suite.Equal(int64(1), suite.inboxCount(lifecycleClient, notification.KindOrderCreated))
	suite.Equal(int64(1), suite.inboxCount(lifecycleAdmin, notification.KindNoCandidates))
}

func (suite *OrderLifecycleIntegrationTestSuite) TestConcurrentAcceptHasOneWinner() {
	ctx := context.Background()
	suite.seed(lifecycleW, account.RoleWorker)
	id := suite.createOrder(ctx)

	const attempts = 2
	results := make([]error, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAcceptProposalCommand(suite.actor(lifecycleW, account.RoleWorker), id)
			if err == nil {
				<-start
				err = suite.accept.Handle(ctx, cmd)
			}
			results[i] = err
		}()
	}
	close(start)
	wg.Wait()

	var won, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, errs.ErrConflict):
			conflicted++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, won)
	suite.Equal(1, conflicted)

	o := suite.load(ctx, id)
	suite.Equal(order.Assigned, o.Status())
	suite.Equal(lifecycleW, *o.WorkerID())
}

func (suite *OrderLifecycleIntegrationTestSuite) TestRejecterIsNeverProposedAgain() {
	ctx := context.Background()
	suite.seed(lifecycleW, account.RoleWorker)
	id := suite.createOrder(ctx)

	rejectCmd, err := commands.NewRejectProposalCommand(suite.actor(lifecycleW, account.RoleWorker), id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reject.Handle(ctx, rejectCmd))

	for range 3 {
		err = suite.runProposal(ctx, id, commands.TriggerRetry)
		suite.Require().Error(err)
	}

	o := suite.load(ctx, id)
	suite.Equal(order.Searching, o.Status())
	suite.Nil(o.ProposedWorkerID())
}

func (suite *OrderLifecycleIntegrationTestSuite) TestClientCannotCancelWorkInProgress() {
	ctx := context.Background()
	suite.seed(lifecycleW, account.RoleWorker)
	id := suite.createOrder(ctx)

	worker := suite.actor(lifecycleW, account.RoleWorker)
	acceptCmd, err := commands.NewAcceptProposalCommand(worker, id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.accept.Handle(ctx, acceptCmd))

	for _, state := range []string{"worker_en_route", "in_progress"} {
		suite.patch(ctx, worker, id, commands.OrderPatch{State: &state})
	}
	before := suite.load(ctx, id)

	cancelled := "cancelled_by_client"
	cmd, err := commands.NewUpdateOrderCommand(
		suite.actor(lifecycleClient, account.RoleClient), id, commands.OrderPatch{State: &cancelled},
	)
	suite.Require().NoError(err)
	err = suite.update.Handle(ctx, cmd)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	after := suite.load(ctx, id)
	suite.Equal(order.InProgress, after.Status())
	suite.Equal(before.Version(), after.Version())
}

func (suite *OrderLifecycleIntegrationTestSuite) createOrder(ctx context.Context) kernel.ID {
	cmd, err := commands.NewCreateOrderCommand(
		suite.actor(lifecycleClient, account.RoleClient),
		"boiler does not start",
		order.Address{Street: "Main", Number: "12", City: "Springfield"},
		"north",
		nil,
	)
	suite.Require().NoError(err)
	id, err := suite.create.Handle(ctx, cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *OrderLifecycleIntegrationTestSuite) patch(
	ctx context.Context,
	actor account.Actor,
	id kernel.ID,
	p commands.OrderPatch,
) {
	cmd, err := commands.NewUpdateOrderCommand(actor, id, p)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.update.Handle(ctx, cmd))
}

func (suite *OrderLifecycleIntegrationTestSuite) runProposal(
	ctx context.Context,
	id kernel.ID,
	trigger commands.ProposalTrigger,
) error {
	cmd, err := commands.NewProposeOrderCommand(id, trigger)
	suite.Require().NoError(err)
	return suite.propose.Handle(ctx, cmd)
}

func (suite *OrderLifecycleIntegrationTestSuite) load(ctx context.Context, id kernel.ID) *order.Order {
	o, err := suite.factory.Create().OrderRepository().Get(ctx, id)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderLifecycleIntegrationTestSuite) seed(id kernel.ID, role account.Role) {
	zones, err := kernel.NewZones([]string{"north"})
	suite.Require().NoError(err)
	a, err := account.NewAccount(id, "account", "", role, zones, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().AccountRepository().Add(context.Background(), a))
}

func (suite *OrderLifecycleIntegrationTestSuite) actor(id kernel.ID, role account.Role) account.Actor {
	a, err := account.NewActor(id, role)
	suite.Require().NoError(err)
	return a
}

// flushNotifications waits for the deliveries started so far. The notifier
// drops anything sent afterwards.
func (suite *OrderLifecycleIntegrationTestSuite) flushNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	suite.Require().NoError(suite.notifier.Close(ctx))
}

func (suite *OrderLifecycleIntegrationTestSuite) inboxCount(recipient kernel.ID, kind notification.Kind) int64 {
	var n int64
	err := suite.db.Table("notifications").
		Where("recipient_id = ? AND kind = ?", recipient.Int64(), string(kind)).
		Count(&n).Error
	suite.Require().NoError(err)
	return n
}

func TestOrderLifecycleIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLifecycleIntegrationTestSuite))
}
