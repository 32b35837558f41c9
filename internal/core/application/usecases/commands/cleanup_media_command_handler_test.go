package commands_test

import (
	"testing"
	"time"

	"relay/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanupMediaCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	old := time.Now().UTC().Add(-48 * time.Hour)
	fresh := time.Now().UTC().Add(-time.Hour)

	t.Run("removes stale orphans only", func(t *testing.T) {
		store := new(MockMediaStore)
		store.On("List", mock.Anything).Return(map[string]time.Time{
			"https://media.example/covers/a.jpg": old,   // referenced
			"https://media.example/covers/b.jpg": old,   // orphaned, stale
			"https://media.example/covers/c.jpg": fresh, // orphaned, in grace period
		}, nil)
		store.On("Remove", mock.Anything, "https://media.example/covers/b.jpg").Return(nil).Once()

		repo := new(MockPackageRepository)
		repo.On("ListCoverImageURLs", mock.Anything).
			Return([]string{"https://media.example/covers/a.jpg"}, nil)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("PackageRepository").Return(repo)

		factory := new(MockPackageUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewCleanupMediaCommandHandler(factory, store, 24*time.Hour)
		removed, err := h.Handle(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		store.AssertExpectations(t)
	})

	t.Run("empty store skips the repository", func(t *testing.T) {
		store := new(MockMediaStore)
		store.On("List", mock.Anything).Return(map[string]time.Time{}, nil)

		factory := new(MockPackageUoWFactory)

		h := commands.NewCleanupMediaCommandHandler(factory, store, 0)
		removed, err := h.Handle(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		factory.AssertNotCalled(t, "Create")
	})
}
