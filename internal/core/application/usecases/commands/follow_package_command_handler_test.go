package commands_test

import (
	"testing"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type followHandlerMocks struct {
	packageRepo  *MockPackageRepository
	accountRepo  *MockAccountRepository
	activityRepo *MockActivityRepository
	uow          *MockUoW
	factory      *MockFollowUoWFactory
}

func newFollowHandlerMocks() followHandlerMocks {
	m := followHandlerMocks{
		packageRepo:  new(MockPackageRepository),
		accountRepo:  new(MockAccountRepository),
		activityRepo: new(MockActivityRepository),
		uow:          new(MockUoW),
		factory:      new(MockFollowUoWFactory),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("PackageRepository").Return(m.packageRepo).Maybe()
	m.uow.On("AccountRepository").Return(m.accountRepo).Maybe()
	m.uow.On("ActivityRepository").Return(m.activityRepo).Maybe()
	return m
}

func TestFollowPackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	author := kernel.NewUUID()
	pkg, _, _ := newTransitPackage(t, author)
	follower := testAccount(t, kernel.NewUUID(), "Carol", 0)

	cmd, err := commands.NewFollowPackageCommand(pkg.ID(), follower.ID())
	require.NoError(t, err)

	m := newFollowHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.packageRepo.On("Update", mock.Anything, pkg).Return(nil)
	m.accountRepo.On("Get", mock.Anything, follower.ID()).Return(follower, nil)
	m.accountRepo.On("Update", mock.Anything, follower).Return(nil)
	m.activityRepo.On("AddFeedEvent", mock.Anything, mock.AnythingOfType("*account.FeedEvent")).Return(nil)

	h := commands.NewFollowPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, pkg.IsFollowedBy(follower.ID()))
	assert.Equal(t, 2, pkg.CountFollowers())
	assert.Equal(t, 1, follower.CountPackagesFollowing())
}

func TestFollowPackageCommandHandler_Handle_RepeatFollowWritesNothing(t *testing.T) {
	ctx := t.Context()

	author := kernel.NewUUID()
	pkg, _, _ := newTransitPackage(t, author)
	follower := testAccount(t, kernel.NewUUID(), "Carol", 0)

	_, err := pkg.Follow(follower.ID(), pkg.CreatedDate())
	require.NoError(t, err)
	require.Equal(t, 2, pkg.CountFollowers())

	cmd, err := commands.NewFollowPackageCommand(pkg.ID(), follower.ID())
	require.NoError(t, err)

	m := newFollowHandlerMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil).Once(),
		m.accountRepo.On("Get", mock.Anything, follower.ID()).Return(follower, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewFollowPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// Idempotent: same count, one entry, nothing persisted.
	assert.Equal(t, 2, pkg.CountFollowers())
	m.packageRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.activityRepo.AssertNotCalled(t, "AddFeedEvent", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUnfollowPackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	author := kernel.NewUUID()
	pkg, _, _ := newTransitPackage(t, author)
	follower := testAccount(t, kernel.NewUUID(), "Carol", 0)

	_, err := pkg.Follow(follower.ID(), pkg.CreatedDate())
	require.NoError(t, err)
	_, err = follower.RecordFollowing(pkg.ID(), pkg.CreatedDate())
	require.NoError(t, err)

	cmd, err := commands.NewUnfollowPackageCommand(pkg.ID(), follower.ID())
	require.NoError(t, err)

	m := newFollowHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.packageRepo.On("Update", mock.Anything, pkg).Return(nil)
	m.accountRepo.On("Get", mock.Anything, follower.ID()).Return(follower, nil)
	m.accountRepo.On("Update", mock.Anything, follower).Return(nil)

	h := commands.NewUnfollowPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, pkg.IsFollowedBy(follower.ID()))
	assert.Equal(t, 1, pkg.CountFollowers())
	assert.Equal(t, 0, follower.CountPackagesFollowing())
}

func TestUnfollowPackageCommandHandler_Handle_NotFollowingWritesNothing(t *testing.T) {
	ctx := t.Context()

	author := kernel.NewUUID()
	pkg, _, _ := newTransitPackage(t, author)
	stranger := testAccount(t, kernel.NewUUID(), "Dave", 0)

	cmd, err := commands.NewUnfollowPackageCommand(pkg.ID(), stranger.ID())
	require.NoError(t, err)

	m := newFollowHandlerMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.packageRepo.On("Get", mock.Anything, pkg.ID()).Return(pkg, nil)
	m.accountRepo.On("Get", mock.Anything, stranger.ID()).Return(stranger, nil)

	h := commands.NewUnfollowPackageCommandHandler(m.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 1, pkg.CountFollowers())
	m.packageRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", ctx)
}
