package queries_test

import (
	"context"
	"testing"
	"time"

	"relay/internal/adapters/out/postgres/activityrepo"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPublicFeedQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *activityrepo.GormActivityRepository
	handler   queries.GetPublicFeedQueryHandler
}

func (suite *GetPublicFeedQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&activityrepo.FeedEventDTO{})
	suite.Require().NoError(err)

	suite.repo = activityrepo.NewGormActivityRepository(db)
	suite.handler = queries.NewGetPublicFeedQueryHandler(db)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE feed_events").Error
	suite.Require().NoError(err)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPublicFeedQueryHandlerTestSuite) addFeedEvent(date time.Time, objectName string) kernel.UUID {
	eventID := kernel.NewUUID()
	event, err := account.NewFeedEvent(
		eventID, date, account.ActivityPackageDropoff,
		kernel.NewUUID(), "Alice", "https://cdn.example.org/alice.jpg",
		kernel.NewUUID(), account.ObjectPackage, objectName,
		"Handed over at the gate", "text",
		map[kernel.UUID]time.Time{kernel.NewUUID(): date})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.AddFeedEvent(context.Background(), event))
	return eventID
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TestHandle_EmptyFeed() {
	query, err := queries.NewGetPublicFeedQuery(time.Time{}, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TestHandle_NewestFirst() {
	base := time.Now().UTC().Add(-time.Hour)

	suite.addFeedEvent(base, "first")
	suite.addFeedEvent(base.Add(10*time.Minute), "second")
	thirdID := suite.addFeedEvent(base.Add(20*time.Minute), "third")

	query, err := queries.NewGetPublicFeedQuery(time.Time{}, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.True(result[0].ID.IsEqual(thirdID))
	suite.Equal("third", result[0].ObjectName)
	suite.Equal("package_dropoff", result[0].ActivityType)
	suite.Equal("Alice", result[0].ActorName)
	suite.Equal("https://cdn.example.org/alice.jpg", result[0].ActorPic)
	suite.Equal("package", result[0].ObjectType)
	suite.Equal("Handed over at the gate", result[0].Supplements)
	suite.Equal("text", result[0].SupplementsType)
	suite.Equal("first", result[2].ObjectName)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TestHandle_CursorExcludesNewerEvents() {
	base := time.Now().UTC().Add(-time.Hour)

	suite.addFeedEvent(base, "first")
	suite.addFeedEvent(base.Add(10*time.Minute), "second")
	suite.addFeedEvent(base.Add(20*time.Minute), "third")

	query, err := queries.NewGetPublicFeedQuery(base.Add(10*time.Minute), 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("first", result[0].ObjectName)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TestHandle_LimitsPage() {
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		suite.addFeedEvent(base.Add(time.Duration(i)*time.Minute), "event")
	}

	query, err := queries.NewGetPublicFeedQuery(time.Time{}, 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
}

func (suite *GetPublicFeedQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	result, err := suite.handler.Handle(context.Background(), queries.GetPublicFeedQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetPublicFeedQueryIsNotConstructed)
	suite.Nil(result)
}

func TestGetPublicFeedQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPublicFeedQueryHandlerTestSuite))
}
