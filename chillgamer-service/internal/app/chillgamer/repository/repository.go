package repository

import (
	"context"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Executor выполняет CRUD операцию через диспетчер
type Executor interface {
	Execute(ctx context.Context, op Operation, collection string, payload, filter bson.M) entity.Result
}

// Page - окно постраничной выборки
type Page struct {
	Skip  int64
	Limit int64
}

// DocumentRepository - выборки, которые не покрываются диспетчером: сортировка, пагинация, проверка существования
type DocumentRepository interface {
	FindPage(ctx context.Context, filter bson.M, page Page) ([]entity.Document, int64, error)
	FindSorted(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]entity.Document, error)
	Exists(ctx context.Context, filter bson.M) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

// ReviewRepository определяет выборки по коллекции отзывов
type ReviewRepository interface {
	DocumentRepository
	FindByRatings(ctx context.Context, ratings []string, limit int64) ([]entity.Document, error)
	IncrementClickCount(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// WatchlistRepository определяет выборки по коллекции watchlist
type WatchlistRepository interface {
	DocumentRepository
}
