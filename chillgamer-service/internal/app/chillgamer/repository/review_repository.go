package repository

import (
	"context"
	"fmt"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	documentRepository
}

// NewReviewRepository создает репозиторий отзывов
// Индексы по reviewerEmail, clickCount и (title, reviewerEmail) создаются в EnsureIndexes
func NewReviewRepository(store CollectionSource, collection string) ReviewRepository {
	return &reviewRepository{
		documentRepository: documentRepository{
			store:      store,
			collection: collection,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: entity.FieldReviewerEmail, Value: 1}},
					Options: options.Index().SetName("reviewer_email_idx"),
				},
				{
					Keys:    bson.D{{Key: entity.FieldClickCount, Value: -1}},
					Options: options.Index().SetName("click_count_idx"),
				},
				{
					// Не уникальный: дубликаты отсекаются проверкой в сервисе
					Keys:    bson.D{{Key: entity.FieldTitle, Value: 1}, {Key: entity.FieldReviewerEmail, Value: 1}},
					Options: options.Index().SetName("title_reviewer_idx"),
				},
			},
		},
	}
}

// FindByRatings возвращает отзывы с rating из списка, по убыванию числового значения оценки
// rating хранится строкой, поэтому сортировка по полю напрямую поставила бы "9" выше "10"
func (r *reviewRepository) FindByRatings(ctx context.Context, ratings []string, limit int64) ([]entity.Document, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{entity.FieldRating: bson.M{"$in": ratings}}}},
		{{Key: "$addFields", Value: bson.M{"ratingValue": bson.M{
			"$convert": bson.M{"input": "$" + entity.FieldRating, "to": "double", "onError": 0, "onNull": 0},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "ratingValue", Value: -1}, {Key: entity.FieldID, Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"ratingValue": 0}}},
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, r.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		timer.Done(err)
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []entity.Document{}
	err = cursor.All(ctx, &docs)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return docs, nil
}

// IncrementClickCount атомарно увеличивает clickCount на 1 и возвращает число измененных документов
func (r *reviewRepository) IncrementClickCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return 0, err
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpIncrement, r.collection)
	res, err := coll.UpdateOne(ctx,
		bson.M{entity.FieldID: id},
		bson.M{"$inc": bson.M{entity.FieldClickCount: 1}},
	)
	timer.Done(err)
	if err != nil {
		return 0, fmt.Errorf("failed to increment click count: %w", err)
	}

	return res.ModifiedCount, nil
}
