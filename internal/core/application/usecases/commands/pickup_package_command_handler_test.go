package commands_test

import (
	"testing"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/core/domain/model/transit"
	"relay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitHandlerMocks struct {
	packageRepo  *MockPackageRepository
	accountRepo  *MockAccountRepository
	transitRepo  *MockTransitRepository
	activityRepo *MockActivityRepository
	uow          *MockUoW
	factory      *MockTransitUoWFactory
}

func newTransitHandlerMocks() transitHandlerMocks {
	m := transitHandlerMocks{
		packageRepo:  new(MockPackageRepository),
		accountRepo:  new(MockAccountRepository),
		transitRepo:  new(MockTransitRepository),
		activityRepo: new(MockActivityRepository),
		uow:          new(MockUoW),
		factory:      new(MockTransitUoWFactory),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("PackageRepository").Return(m.packageRepo).Maybe()
	m.uow.On("AccountRepository").Return(m.accountRepo).Maybe()
	m.uow.On("TransitRepository").Return(m.transitRepo).Maybe()
	m.uow.On("ActivityRepository").Return(m.activityRepo).Maybe()
	return m
}

// newTransitPackage builds a package freshly created by its author, i.e. in
// Transit carried by the author, with the destination 10 km from the origin.
func newTransitPackage(t *testing.T, author kernel.UUID) (*pack.Package, kernel.GeoPoint, kernel.GeoPoint) {
	t.Helper()

	destination := mustGeoPoint(t, 52.5200, 13.4050)
	origin := pointAtDistance(t, destination, 10_000)
	content := testContent(t, destination, "clean-rivers", kernel.NewUUID())

	pkg, err := pack.NewPackage(
		kernel.NewUUID(), author, content, origin,
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	return pkg, origin, destination
}

func TestPickupPackageCommandHandler_Handle_HandOver(t *testing.T) {
	ctx := t.Context()

	author := testAccount(t, kernel.NewUUID(), "Alice", 400)
	pkg, origin, _ := newTransitPackage(t, author.ID())
	require.NoError(t, author.SetCurrentPackage(pkg.ID()))

	courier := testAccount(t, kernel.NewUUID(), "Bob", 500)
	location := pointAtDistance(t, origin, -500)

	cmd, err := commands.NewPickupPackageCommand(pkg.ID(), courier.ID(), location)
	require.NoError(t, err)

	m := newTransitHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.packageRepo.On("Update", mock.Anything, pkg).Return(nil)
	m.accountRepo.On("Get", mock.Anything, courier.ID()).Return(courier, nil)
	m.accountRepo.On("Get", mock.Anything, author.ID()).Return(author, nil)
	m.accountRepo.On("Update", mock.Anything, mock.AnythingOfType("*account.Account")).Return(nil)
	m.transitRepo.On("Get", mock.Anything, pkg.ID(), courier.ID()).
		Return(nil, errs.NewObjectNotFoundError("transit record", pkg.ID()))
	m.transitRepo.On("Add", mock.Anything, mock.AnythingOfType("*transit.Record")).Return(nil)
	m.activityRepo.On("Add", mock.Anything, mock.AnythingOfType("*account.Activity")).Return(nil)
	m.activityRepo.On("AddFeedEvent", mock.Anything, mock.AnythingOfType("*account.FeedEvent")).Return(nil)

	h := commands.NewPickupPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// The package changes hands: Bob carries it, Alice is released, and Bob
	// is auto-subscribed as a follower.
	require.NotNil(t, pkg.Courier())
	assert.True(t, pkg.Courier().IsEqual(courier.ID()))
	assert.Equal(t, pack.StatusTransit, pkg.Status())
	assert.True(t, pkg.IsFollowedBy(courier.ID()))
	assert.Equal(t, 2, pkg.CountFollowers())

	require.NotNil(t, courier.CurrentPackage())
	assert.True(t, courier.CurrentPackage().IsEqual(pkg.ID()))
	assert.Nil(t, author.CurrentPackage())
	assert.Equal(t, 1, courier.CountPackagesFollowing())

	m.transitRepo.AssertExpectations(t)
}

func TestPickupPackageCommandHandler_Handle_ReturningCourierRestartsRecord(t *testing.T) {
	ctx := t.Context()

	author := testAccount(t, kernel.NewUUID(), "Alice", 400)
	pkg, origin, _ := newTransitPackage(t, author.ID())
	require.NoError(t, author.SetCurrentPackage(pkg.ID()))

	courier := testAccount(t, kernel.NewUUID(), "Bob", 500)
	pickupAt := pointAtDistance(t, origin, -500)

	// Bob carried this package before and dropped it off.
	earlier := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	record, err := transit.NewRecord(pkg.ID(), courier.ID(), origin, earlier)
	require.NoError(t, err)
	require.NoError(t, record.CompleteDropoff(pickupAt, earlier.Add(time.Hour)))

	cmd, err := commands.NewPickupPackageCommand(pkg.ID(), courier.ID(), pickupAt)
	require.NoError(t, err)

	m := newTransitHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.packageRepo.On("Update", mock.Anything, pkg).Return(nil)
	m.accountRepo.On("Get", mock.Anything, courier.ID()).Return(courier, nil)
	m.accountRepo.On("Get", mock.Anything, author.ID()).Return(author, nil)
	m.accountRepo.On("Update", mock.Anything, mock.AnythingOfType("*account.Account")).Return(nil)
	m.transitRepo.On("Get", mock.Anything, pkg.ID(), courier.ID()).Return(record, nil)
	m.transitRepo.On("Update", mock.Anything, record).Return(nil)
	m.activityRepo.On("Add", mock.Anything, mock.AnythingOfType("*account.Activity")).Return(nil)
	m.activityRepo.On("AddFeedEvent", mock.Anything, mock.AnythingOfType("*account.FeedEvent")).Return(nil)

	h := commands.NewPickupPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// The old record is reused with a fresh open leg.
	assert.False(t, record.HasDroppedOff())
	assert.True(t, record.PickupPoint().IsEqual(pickupAt))
	m.transitRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestPickupPackageCommandHandler_Handle_SelfRepickupRejected(t *testing.T) {
	ctx := t.Context()

	author := testAccount(t, kernel.NewUUID(), "Alice", 400)
	pkg, origin, _ := newTransitPackage(t, author.ID())

	cmd, err := commands.NewPickupPackageCommand(pkg.ID(), author.ID(), origin)
	require.NoError(t, err)

	m := newTransitHandlerMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil).Once(),
		m.accountRepo.On("Get", mock.Anything, author.ID()).Return(author, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewPickupPackageCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, pack.ErrCourierAlreadyCarrying)
	m.packageRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestPickupPackageCommandHandler_Handle_DeliveredPackageRejected(t *testing.T) {
	ctx := t.Context()

	author := testAccount(t, kernel.NewUUID(), "Alice", 400)
	pkg, origin, destination := newTransitPackage(t, author.ID())
	courier := testAccount(t, kernel.NewUUID(), "Bob", 500)

	// Deliver the package first.
	deliveredAt := pointAtDistance(t, destination, 50)
	_, err := pkg.Dropoff(author.ID(), origin, deliveredAt)
	require.NoError(t, err)
	require.Equal(t, pack.StatusDelivered, pkg.Status())

	cmd, err := commands.NewPickupPackageCommand(pkg.ID(), courier.ID(), deliveredAt)
	require.NoError(t, err)

	m := newTransitHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.accountRepo.On("Get", mock.Anything, courier.ID()).Return(courier, nil)

	h := commands.NewPickupPackageCommandHandler(m.factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, pack.StatusDelivered, pkg.Status())
	m.uow.AssertNotCalled(t, "Commit", ctx)
}
