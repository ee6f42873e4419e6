package mocks

import (
	"context"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockExecutor мок для CRUD диспетчера
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, op repository.Operation, collection string, payload, filter bson.M) entity.Result {
	args := m.Called(ctx, op, collection, payload, filter)
	return args.Get(0).(entity.Result)
}

// MockDocumentRepository реализует общие выборки
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindPage(ctx context.Context, filter bson.M, page repository.Page) ([]entity.Document, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) FindSorted(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, filter, sort, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Document), args.Error(1)
}

func (m *MockDocumentRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
	args := m.Called(ctx, filter)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	MockDocumentRepository
}

func (m *MockReviewRepository) FindByRatings(ctx context.Context, ratings []string, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, ratings, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Document), args.Error(1)
}

func (m *MockReviewRepository) IncrementClickCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockWatchlistRepository мок для WatchlistRepository
type MockWatchlistRepository struct {
	MockDocumentRepository
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
