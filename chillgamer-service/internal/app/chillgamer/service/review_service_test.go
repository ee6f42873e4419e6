package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testReviews = "reviews"

func newTestReviewService() (*ReviewService, *mocks.MockExecutor, *mocks.MockReviewRepository, *mocks.MockMessagePublisher) {
	crud := new(mocks.MockExecutor)
	repo := new(mocks.MockReviewRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	return NewReviewService(crud, repo, publisher, testReviews), crud, repo, publisher
}

func modified(n int64) *int64 {
	return &n
}

func TestCreateReview_Success(t *testing.T) {
	service, crud, repo, publisher := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	payload := entity.Document{"title": "Game A", "rating": "10", "publishingYear": "2025", "reviewerEmail": "a@x.com"}

	repo.On("Exists", ctx, bson.M{"title": "Game A", "reviewerEmail": "a@x.com"}).Return(false, nil)
	crud.On("Execute", ctx, repository.OpCreate, testReviews, payload, bson.M(nil)).
		Return(entity.Result{Success: true, InsertedID: id})
	publisher.On("PublishMessage", mock.Anything, id.Hex(), mock.Anything).Return(nil)

	insertedID, err := service.CreateReview(ctx, payload)

	require.NoError(t, err)
	assert.Equal(t, id, insertedID)
	require.Len(t, publisher.Messages, 1)

	var event entity.ReviewEvent
	require.NoError(t, json.Unmarshal(publisher.Messages[0], &event))
	assert.Equal(t, entity.EventReviewCreated, event.EventType)
	assert.Equal(t, "Game A", event.Title)
}

func TestCreateReview_EmptyPayload(t *testing.T) {
	service, crud, _, _ := newTestReviewService()

	_, err := service.CreateReview(context.Background(), entity.Document{})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = service.CreateReview(context.Background(), entity.Document{"_id": "abc"})
	assert.ErrorIs(t, err, ErrInvalidData)

	crud.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_Duplicate(t *testing.T) {
	service, crud, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("Exists", ctx, bson.M{"title": "Game A", "reviewerEmail": "a@x.com"}).Return(true, nil)

	_, err := service.CreateReview(ctx, entity.Document{"title": "Game A", "reviewerEmail": "a@x.com"})

	assert.ErrorIs(t, err, ErrDuplicate)
	crud.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_WithoutTitleSkipsDuplicateCheck(t *testing.T) {
	service, crud, repo, publisher := newTestReviewService()
	ctx := context.Background()
	payload := entity.Document{"rating": "7"}

	crud.On("Execute", ctx, repository.OpCreate, testReviews, payload, bson.M(nil)).
		Return(entity.Result{Success: true, InsertedID: primitive.NewObjectID()})
	publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateReview(ctx, payload)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestCreateReview_KafkaErrorIgnored(t *testing.T) {
	service, crud, repo, publisher := newTestReviewService()
	ctx := context.Background()
	payload := entity.Document{"title": "Game B"}

	repo.On("Exists", ctx, bson.M{"title": "Game B"}).Return(false, nil)
	crud.On("Execute", ctx, repository.OpCreate, testReviews, payload, bson.M(nil)).
		Return(entity.Result{Success: true, InsertedID: primitive.NewObjectID()})
	publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	insertedID, err := service.CreateReview(ctx, payload)

	assert.NoError(t, err)
	assert.NotNil(t, insertedID)
}

func TestCreateReview_PublishIsBounded(t *testing.T) {
	service, crud, repo, publisher := newTestReviewService()
	ctx := context.Background()
	payload := entity.Document{"title": "Game D"}

	repo.On("Exists", ctx, bson.M{"title": "Game D"}).Return(false, nil)
	crud.On("Execute", ctx, repository.OpCreate, testReviews, payload, bson.M(nil)).
		Return(entity.Result{Success: true, InsertedID: primitive.NewObjectID()})
	bounded := mock.MatchedBy(func(c context.Context) bool {
		deadline, ok := c.Deadline()
		return ok && time.Until(deadline) <= publishTimeout
	})
	publisher.On("PublishMessage", bounded, mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	_, err := service.CreateReview(ctx, payload)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestCreateReview_TitleOnlyDuplicateWithoutEmail(t *testing.T) {
	service, crud, repo, _ := newTestReviewService()
	ctx := context.Background()

	// без reviewerEmail дубликатом считается любой отзыв с тем же title
	repo.On("Exists", ctx, bson.M{"title": "Game E"}).Return(true, nil)

	_, err := service.CreateReview(ctx, entity.Document{"title": "Game E", "rating": "7"})

	assert.ErrorIs(t, err, ErrDuplicate)
	repo.AssertExpectations(t)
	crud.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_StoreFault(t *testing.T) {
	service, crud, repo, _ := newTestReviewService()
	ctx := context.Background()
	payload := entity.Document{"title": "Game C"}

	repo.On("Exists", ctx, mock.Anything).Return(false, nil)
	crud.On("Execute", ctx, repository.OpCreate, testReviews, payload, bson.M(nil)).
		Return(entity.Result{Success: false, Message: "Server error", Error: "connection reset", Outcome: entity.OutcomeStoreFault})

	_, err := service.CreateReview(ctx, payload)

	assert.ErrorIs(t, err, ErrStore)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "connection reset", opErr.Detail)
}

func TestListReviews_Pagination(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()
	docs := []entity.Document{{"title": "Game G"}, {"title": "Game H"}}

	repo.On("FindPage", ctx, bson.M{}, repository.Page{Skip: 6, Limit: 6}).Return(docs, int64(8), nil)

	page, err := service.ListReviews(ctx, 2, 6)

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.CurrentPage)
	assert.Equal(t, int64(2), page.TotalPage)
}

func TestListReviews_EmptyIsSuccess(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("FindPage", ctx, bson.M{}, repository.Page{Skip: 0, Limit: 6}).Return([]entity.Document{}, int64(0), nil)

	page, err := service.ListReviews(ctx, 1, 6)

	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.TotalPage)
}

func TestListReviewsByEmail_NotFound(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("FindPage", ctx, bson.M{"reviewerEmail": "missing@x.com"}, repository.Page{Skip: 0, Limit: 6}).
		Return([]entity.Document{}, int64(0), nil)

	_, err := service.ListReviewsByEmail(ctx, "missing@x.com", 1, 6)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReview(t *testing.T) {
	service, crud, _, _ := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	doc := entity.Document{"_id": id, "title": "Game A"}

	crud.On("Execute", ctx, repository.OpReadOne, testReviews, bson.M(nil), bson.M{"_id": id.Hex()}).
		Return(entity.Result{Success: true, Data: doc})
	crud.On("Execute", ctx, repository.OpReadOne, testReviews, bson.M(nil), bson.M{"_id": "bad"}).
		Return(entity.Result{Success: false, Outcome: entity.OutcomeInvalidIdentifier, Error: "invalid identifier"})

	result, err := service.GetReview(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Game A", result["title"])

	_, err = service.GetReview(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUpdateReview_NoChanges(t *testing.T) {
	service, crud, _, _ := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()
	payload := entity.Document{"rating": "9"}

	crud.On("Execute", ctx, repository.OpUpdate, testReviews, payload, bson.M{"_id": id}).
		Return(entity.Result{Success: true, ModifiedCount: modified(1)}).Once()
	crud.On("Execute", ctx, repository.OpUpdate, testReviews, payload, bson.M{"_id": id}).
		Return(entity.Result{Success: false, Outcome: entity.OutcomeNotFound}).Once()

	result, err := service.UpdateReview(ctx, id, payload)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), *result.ModifiedCount)

	_, err = service.UpdateReview(ctx, id, payload)
	assert.ErrorIs(t, err, ErrNotFound)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "No review found or no changes", opErr.Message)
}

func TestPatchReview_UsesPatchOperation(t *testing.T) {
	service, crud, _, _ := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	crud.On("Execute", ctx, repository.OpPatch, testReviews, entity.Document{"title": "Renamed"}, bson.M{"_id": id}).
		Return(entity.Result{Success: true, ModifiedCount: modified(1)})

	_, err := service.PatchReview(ctx, id, entity.Document{"title": "Renamed", "_id": "ignored"})

	assert.NoError(t, err)
	crud.AssertExpectations(t)
}

func TestDeleteReview_NotFound(t *testing.T) {
	service, crud, _, _ := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	crud.On("Execute", ctx, repository.OpDelete, testReviews, bson.M(nil), bson.M{"_id": id}).
		Return(entity.Result{Success: false, Outcome: entity.OutcomeNotFound})

	_, err := service.DeleteReview(ctx, id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopRatedReviews(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("FindByRatings", ctx, TopRatings, int64(1)).Return([]entity.Document{{"rating": "10"}}, nil)
	repo.On("FindByRatings", ctx, TopRatings, int64(5)).Return([]entity.Document{}, nil)

	docs, err := service.TopRatedReviews(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = service.TopRatedReviews(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestGames_UsesCurrentAndPreviousYear(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	service.now = func() time.Time { return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	filter := bson.M{"publishingYear": bson.M{"$in": []string{"2026", "2025"}}}
	sort := bson.D{{Key: "publishingYear", Value: -1}, {Key: "_id", Value: -1}}
	repo.On("FindSorted", ctx, filter, sort, int64(5)).Return([]entity.Document{{"publishingYear": "2026"}}, nil)

	docs, err := service.LatestGames(ctx, 5)

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLatestGames_EmptyIsNotFound(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("FindSorted", ctx, mock.Anything, mock.Anything, int64(5)).Return([]entity.Document{}, nil)

	_, err := service.LatestGames(ctx, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestReviews_EmptyIsSuccess(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	sort := bson.D{{Key: "timeStamp", Value: -1}, {Key: "_id", Value: -1}}
	repo.On("FindSorted", ctx, bson.M{}, sort, int64(5)).Return([]entity.Document{}, nil)

	docs, err := service.LatestReviews(ctx, 5)

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIncrementClickCount(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()
	id := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	repo.On("IncrementClickCount", ctx, id).Return(int64(1), nil)
	repo.On("IncrementClickCount", ctx, missing).Return(int64(0), nil)

	result, err := service.IncrementClickCount(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Click count incremented", result.Message)

	_, err = service.IncrementClickCount(ctx, missing.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.IncrementClickCount(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPopularReviews(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	filter := bson.M{"clickCount": bson.M{"$gt": 0}}
	sort := bson.D{{Key: "clickCount", Value: -1}, {Key: "_id", Value: 1}}
	repo.On("FindSorted", ctx, filter, sort, int64(5)).Return([]entity.Document{}, nil).Once()
	repo.On("FindSorted", ctx, filter, sort, int64(5)).Return(nil, errors.New("timeout")).Once()

	_, err := service.PopularReviews(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.PopularReviews(ctx, 5)
	assert.ErrorIs(t, err, ErrStore)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int64
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{13, 5, 3},
		{2, math.MaxInt64, 1},
		{math.MaxInt64, math.MaxInt64, 1},
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MaxInt64, 2, math.MaxInt64/2 + 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, totalPages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		page, limit int64
		want        repository.Page
	}{
		{1, 6, repository.Page{Skip: 0, Limit: 6}},
		{3, 5, repository.Page{Skip: 10, Limit: 5}},
		{1, math.MaxInt64, repository.Page{Skip: 0, Limit: math.MaxInt64}},
		{2, math.MaxInt64, repository.Page{Skip: math.MaxInt64, Limit: math.MaxInt64}},
		{math.MaxInt64, 6, repository.Page{Skip: math.MaxInt64, Limit: 6}},
		{math.MaxInt64/6 + 1, 6, repository.Page{Skip: math.MaxInt64 - math.MaxInt64%6, Limit: 6}},
	}
	for _, tc := range cases {
		got := pageWindow(tc.page, tc.limit)
		assert.Equal(t, tc.want, got, "page=%d limit=%d", tc.page, tc.limit)
		assert.GreaterOrEqual(t, got.Skip, int64(0))
	}
}

func TestListReviews_HugePageIsEmpty(t *testing.T) {
	service, _, repo, _ := newTestReviewService()
	ctx := context.Background()

	repo.On("FindPage", ctx, bson.M{}, repository.Page{Skip: math.MaxInt64, Limit: 6}).
		Return([]entity.Document{}, int64(13), nil)

	page, err := service.ListReviews(ctx, math.MaxInt64, 6)

	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(math.MaxInt64), page.CurrentPage)
	assert.Equal(t, int64(3), page.TotalPage)
	repo.AssertExpectations(t)
}
