package postgres_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"ordering/internal/adapters/out/events"
	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu    sync.Mutex
	names []string
}

func (p *recordingPublisher) Publish(_ context.Context, evts ...kernel.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range evts {
		p.names = append(p.names, e.EventName())
	}
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.names...)
}

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *recordingPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.publisher = &recordingPublisher{}
	dispatcher := events.NewDispatcher(suite.publisher, slog.Default())
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, dispatcher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Begin is idempotent")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAndPublishes() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Save(ctx, o))
	suite.Empty(suite.publisher.published())
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]string{order.EventOrderCreated}, suite.publisher.published())
	suite.Empty(o.DomainEvents())

	loaded, err := suite.factory.Create().OrderRepository().GetByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(1, loaded.ItemCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Save(ctx, o))

	exists, err := uow.OrderRepository().Exists(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(exists)

	suite.Require().NoError(uow.Rollback(ctx))

	exists, err = suite.factory.Create().OrderRepository().Exists(ctx, o.ID())
	suite.Require().NoError(err)
	suite.False(exists)
	suite.Empty(suite.publisher.published())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SavingTwiceTracksAggregateOnce() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Save(ctx, o))
	suite.Require().NoError(o.Confirm())
	suite.Require().NoError(uow.OrderRepository().Save(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]string{order.EventOrderCreated, order.EventOrderConfirmed}, suite.publisher.published())
	suite.Equal(2, o.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentUpdateConflicts() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Save(ctx, o))

	first, err := suite.factory.Create().OrderRepository().GetByID(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().GetByID(ctx, o.ID())
	suite.Require().NoError(err)

	uow1 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(uow1.OrderRepository().Save(ctx, first))
	suite.Require().NoError(uow1.Commit(ctx))

	uow2 := suite.factory.Create()
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(second.Cancel())
	err = uow2.OrderRepository().Save(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(uow2.Rollback(ctx))

	stored, err := suite.factory.Create().OrderRepository().GetByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewOrderID(), kernel.NewCustomerID())
	suite.Require().NoError(err)
	price := kernel.MustNewMoney(decimal.NewFromInt(2500), "TWD")
	suite.Require().NoError(o.AddItem(kernel.NewProductID(), "Mouse", price, 2))
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
