package accountrepo_test

import (
	"context"
	"testing"
	"time"

	"relay/internal/adapters/out/postgres/accountrepo"
	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type AccountRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *accountrepo.GormAccountRepository
}

func (suite *AccountRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&accountrepo.AccountDTO{})
	suite.Require().NoError(err)

	suite.repo = accountrepo.NewGormAccountRepository(db, noopTracker{})
}

func (suite *AccountRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE accounts").Error
	suite.Require().NoError(err)
}

func (suite *AccountRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *AccountRepositoryIntegrationTestSuite) newAccount(balance int) *account.Account {
	acc, err := account.NewAccount(
		kernel.NewUUID(), "Alice", "https://media.example/avatars/alice.jpg",
		time.Now().UTC(), balance)
	suite.Require().NoError(err)
	return acc
}

func (suite *AccountRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	acc := suite.newAccount(500)

	err := suite.repo.Add(ctx, acc)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, acc.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(acc.ID()))
	suite.Equal("Alice", restored.DisplayName())
	suite.Equal("https://media.example/avatars/alice.jpg", restored.PicURL())
	suite.Equal(500, restored.PointsBalance())
	suite.Nil(restored.CurrentPackage())
	suite.Equal(0, restored.CountPackagesFollowing())
	suite.Equal(0, restored.CountPackagesMoved())
}

func (suite *AccountRepositoryIntegrationTestSuite) TestUpdatePersistsLifecycleState() {
	ctx := context.Background()
	acc := suite.newAccount(500)

	err := suite.repo.Add(ctx, acc)
	suite.Require().NoError(err)

	packageID := kernel.NewUUID()
	now := time.Now().UTC()

	suite.Require().NoError(acc.Debit(100))
	suite.Require().NoError(acc.SetCurrentPackage(packageID))
	changed, err := acc.RecordFollowing(packageID, now)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(acc.SetInterest("environment", true))

	err = suite.repo.Update(ctx, acc)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, acc.ID())
	suite.Require().NoError(err)
	suite.Equal(400, restored.PointsBalance())
	suite.Require().NotNil(restored.CurrentPackage())
	suite.True(restored.CurrentPackage().IsEqual(packageID))
	suite.Equal(1, restored.CountPackagesFollowing())
	suite.True(restored.Interests()["environment"])
}

func (suite *AccountRepositoryIntegrationTestSuite) TestUpdatePersistsClearedPackage() {
	ctx := context.Background()
	acc := suite.newAccount(500)

	packageID := kernel.NewUUID()
	suite.Require().NoError(acc.SetCurrentPackage(packageID))
	suite.Require().NoError(suite.repo.Add(ctx, acc))

	suite.Require().NoError(acc.ClearCurrentPackage())
	suite.Require().NoError(acc.RecordMoved(packageID, time.Now().UTC()))

	err := suite.repo.Update(ctx, acc)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, acc.ID())
	suite.Require().NoError(err)
	suite.Nil(restored.CurrentPackage())
	suite.Equal(1, restored.CountPackagesMoved())
}

func (suite *AccountRepositoryIntegrationTestSuite) TestGetNotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAccountRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryIntegrationTestSuite))
}
