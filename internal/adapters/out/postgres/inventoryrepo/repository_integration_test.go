package inventoryrepo_test

import (
	"context"
	"sync"
	"testing"

	"ordering/internal/adapters/out/postgres/inventoryrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.StockDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stock").Error)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db, 100)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetAvailableStock_UnknownProduct_ReturnsDefault() {
	stock, err := suite.repository.GetAvailableStock(context.Background(), kernel.NewProductID())

	suite.Require().NoError(err)
	suite.Equal(100, stock)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestSetStock_Upserts() {
	ctx := context.Background()
	productID := kernel.NewProductID()

	suite.Require().NoError(suite.repository.SetStock(ctx, productID, 5))
	suite.Require().NoError(suite.repository.SetStock(ctx, productID, 7))

	stock, err := suite.repository.GetAvailableStock(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(7, stock)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserveStock_DecrementsUntilExhausted() {
	ctx := context.Background()
	productID := kernel.NewProductID()
	suite.Require().NoError(suite.repository.SetStock(ctx, productID, 3))

	suite.Require().NoError(suite.repository.ReserveStock(ctx, productID, 2))
	err := suite.repository.ReserveStock(ctx, productID, 2)
	suite.Require().ErrorIs(err, errs.ErrBusinessRuleViolation)

	stock, err := suite.repository.GetAvailableStock(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(1, stock)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserveStock_UnknownProductStartsFromDefault() {
	ctx := context.Background()
	productID := kernel.NewProductID()

	suite.Require().NoError(suite.repository.ReserveStock(ctx, productID, 40))

	stock, err := suite.repository.GetAvailableStock(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(60, stock)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestReserveStock_ConcurrentReservationsNeverOversell() {
	ctx := context.Background()
	productID := kernel.NewProductID()
	suite.Require().NoError(suite.repository.SetStock(ctx, productID, 5))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := suite.repository.ReserveStock(ctx, productID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(5, succeeded)
	stock, err := suite.repository.GetAvailableStock(ctx, productID)
	suite.Require().NoError(err)
	suite.Zero(stock)
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
