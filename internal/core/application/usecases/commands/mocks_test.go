package commands_test

import (
	"context"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/core/domain/model/topic"
	"relay/internal/core/domain/model/transit"
	"relay/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *pack.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPackageRepository) Update(ctx context.Context, p *pack.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*pack.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pack.Package), args.Error(1)
}
func (m *MockPackageRepository) ListCoverImageURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockTransitRepository struct{ mock.Mock }

func (m *MockTransitRepository) Add(ctx context.Context, r *transit.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockTransitRepository) Update(ctx context.Context, r *transit.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockTransitRepository) Get(ctx context.Context, packageID, courierID kernel.UUID) (*transit.Record, error) {
	args := m.Called(ctx, packageID, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transit.Record), args.Error(1)
}

type MockTopicRepository struct{ mock.Mock }

func (m *MockTopicRepository) Add(ctx context.Context, t *topic.Topic) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTopicRepository) Update(ctx context.Context, t *topic.Topic) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTopicRepository) Get(ctx context.Context, id kernel.UUID) (*topic.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topic.Topic), args.Error(1)
}
func (m *MockTopicRepository) GetByName(ctx context.Context, name string) (*topic.Topic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topic.Topic), args.Error(1)
}
func (m *MockTopicRepository) AddTemplate(ctx context.Context, t *topic.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTopicRepository) UpdateTemplate(ctx context.Context, t *topic.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTopicRepository) GetTemplate(ctx context.Context, id kernel.UUID) (*topic.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topic.Template), args.Error(1)
}

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) Add(ctx context.Context, a *account.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockActivityRepository) AddFeedEvent(ctx context.Context, e *account.FeedEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockActivityRepository) ListByOwner(ctx context.Context, owner kernel.UUID, limit int) ([]*account.Activity, error) {
	args := m.Called(ctx, owner, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Activity), args.Error(1)
}
func (m *MockActivityRepository) ListFeed(ctx context.Context, olderThan time.Time, limit int) ([]*account.FeedEvent, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.FeedEvent), args.Error(1)
}

type MockMediaStore struct{ mock.Mock }

func (m *MockMediaStore) List(ctx context.Context) (map[string]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}
func (m *MockMediaStore) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockUoW satisfies every unit of work composition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}
func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}
func (m *MockUoW) TransitRepository() ports.TransitRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitRepository)
}
func (m *MockUoW) TopicRepository() ports.TopicRepository {
	args := m.Called()
	return args.Get(0).(ports.TopicRepository)
}
func (m *MockUoW) ActivityRepository() ports.ActivityRepository {
	args := m.Called()
	return args.Get(0).(ports.ActivityRepository)
}

type MockCreationUoWFactory struct{ mock.Mock }

func (m *MockCreationUoWFactory) Create() commands.CreationUoW {
	args := m.Called()
	return args.Get(0).(commands.CreationUoW)
}

type MockTransitUoWFactory struct{ mock.Mock }

func (m *MockTransitUoWFactory) Create() commands.TransitUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitUoW)
}

type MockFollowUoWFactory struct{ mock.Mock }

func (m *MockFollowUoWFactory) Create() commands.FollowUoW {
	args := m.Called()
	return args.Get(0).(commands.FollowUoW)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}
