package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "servicedesk/internal/adapters/out/postgres"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, accounts, notifications RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotSame(first, second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositoriesAndReleasesEvents() {
	ctx := context.Background()
	worker := suite.seedAccount(ctx, 2, account.RoleWorker)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o := suite.newOrder(ctx, uow)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.Propose(worker))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))

	orderID := o.ID()
	n, err := notification.NewNotification(worker.ID(), notification.Message{
		Kind: notification.KindProposalReceived, Text: "new proposal", OrderID: &orderID,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NotificationRepository().Add(ctx, n))

	suite.Require().NoError(uow.Commit(ctx))

	events := uow.PullEvents()
	suite.Require().Len(events, 2)
	suite.Equal(order.EventCreated, events[0].Kind)
	suite.Equal(order.EventProposed, events[1].Kind)
	suite.Empty(uow.PullEvents(), "events are drained once")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AwaitingAcceptance, stored.Status())

	var inbox int64
	suite.Require().NoError(suite.db.Table("notifications").Where("recipient_id = ?", 2).Count(&inbox).Error)
	suite.Equal(int64(1), inbox)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o := suite.newOrder(ctx, uow)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.PullEvents())
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesOutsideTransaction_UseConnection() {
	ctx := context.Background()
	suite.seedAccount(ctx, 7, account.RoleOrganizationAdmin)

	uow := suite.factory.Create()
	got, err := uow.AccountRepository().Get(ctx, 7)

	suite.Require().NoError(err)
	suite.Equal(account.RoleOrganizationAdmin, got.Role())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUncommittedWrites_AreInvisibleToOtherUnits() {
	ctx := context.Background()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	o := suite.newOrder(ctx, writer)
	suite.Require().NoError(writer.OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(writer.Commit(ctx))
	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(ctx context.Context, uow ports.UnitOfWork) *order.Order {
	id, err := uow.OrderRepository().NextID(ctx)
	suite.Require().NoError(err)
	zone, err := kernel.NewZone("north")
	suite.Require().NoError(err)
	details, err := order.NewDetails("leaking tap", order.Address{Street: "Main"}, nil, zone)
	suite.Require().NoError(err)
	client, err := account.NewActor(1, account.RoleClient)
	suite.Require().NoError(err)
	o, err := order.NewOrder(id, client, details)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) seedAccount(ctx context.Context, id kernel.ID, role account.Role) *account.Account {
	zones, err := kernel.NewZones([]string{"north"})
	suite.Require().NoError(err)
	a, err := account.NewAccount(id, "account", "", role, zones, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().AccountRepository().Add(ctx, a))
	return a
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
