package repository

import (
	"context"
	"fmt"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type documentRepository struct {
	store      CollectionSource
	collection string
	indexes    []mongo.IndexModel
}

func (r *documentRepository) coll(ctx context.Context) (*mongo.Collection, error) {
	coll, err := r.store.Collection(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection %s: %w", r.collection, err)
	}
	return coll, nil
}

// FindPage возвращает страницу документов и общее количество подходящих под фильтр
// Порядок - по _id, чтобы страницы не пересекались
func (r *documentRepository) FindPage(ctx context.Context, filter bson.M, page Page) ([]entity.Document, int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, 0, err
	}

	countTimer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, r.collection)
	total, err := coll.CountDocuments(ctx, filter)
	countTimer.Done(err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: entity.FieldID, Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	docs, err := r.find(ctx, coll, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// FindSorted возвращает до limit документов в заданном порядке
func (r *documentRepository) FindSorted(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]entity.Document, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(sort).SetLimit(limit)
	return r.find(ctx, coll, filter, opts)
}

// Exists проверяет наличие хотя бы одного документа под фильтр
func (r *documentRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return false, err
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, r.collection)
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	timer.Done(err)
	if err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}
	return count > 0, nil
}

// EnsureIndexes создает индексы коллекции
func (r *documentRepository) EnsureIndexes(ctx context.Context) error {
	if len(r.indexes) == 0 {
		return nil
	}

	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.Indexes().CreateMany(ctx, r.indexes); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", r.collection, err)
	}
	return nil
}

func (r *documentRepository) find(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]entity.Document, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpRead, r.collection)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		timer.Done(err)
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []entity.Document{}
	err = cursor.All(ctx, &docs)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return docs, nil
}
