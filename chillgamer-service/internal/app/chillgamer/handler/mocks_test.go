package handler

import (
	"context"
	"errors"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, payload entity.Document) (interface{}, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, page, limit int64) (*entity.PageResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse), args.Error(1)
}

func (m *MockReviewService) ListReviewsByEmail(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error) {
	args := m.Called(ctx, email, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id string) (entity.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Document), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error) {
	args := m.Called(ctx, id, payload)
	return resultOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) PatchReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error) {
	args := m.Called(ctx, id, payload)
	return resultOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id string) (*entity.Result, error) {
	args := m.Called(ctx, id)
	return resultOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) TopRatedReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, limit)
	return docsOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) LatestGames(ctx context.Context, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, limit)
	return docsOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) LatestReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, limit)
	return docsOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) IncrementClickCount(ctx context.Context, id string) (*entity.Result, error) {
	args := m.Called(ctx, id)
	return resultOf(args.Get(0)), args.Error(1)
}

func (m *MockReviewService) PopularReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	args := m.Called(ctx, limit)
	return docsOf(args.Get(0)), args.Error(1)
}

type MockWatchlistService struct {
	mock.Mock
}

func (m *MockWatchlistService) AddEntry(ctx context.Context, payload entity.Document) (interface{}, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockWatchlistService) ListByVisitor(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error) {
	args := m.Called(ctx, email, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse), args.Error(1)
}

func (m *MockWatchlistService) GetEntry(ctx context.Context, id string) (entity.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Document), args.Error(1)
}

func (m *MockWatchlistService) DeleteEntry(ctx context.Context, id string) (*entity.Result, error) {
	args := m.Called(ctx, id)
	return resultOf(args.Get(0)), args.Error(1)
}

type stubHealth struct {
	err error
}

func (s stubHealth) Ping(context.Context) error {
	return s.err
}

var errPingFailed = errors.New("server selection timeout")

func resultOf(v interface{}) *entity.Result {
	if v == nil {
		return nil
	}
	return v.(*entity.Result)
}

func docsOf(v interface{}) []entity.Document {
	if v == nil {
		return nil
	}
	return v.([]entity.Document)
}
