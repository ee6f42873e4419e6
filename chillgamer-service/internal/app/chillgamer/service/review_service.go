package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/infrastructure"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"
	"chillgamer/pkg/logger"
	"chillgamer/pkg/metrics"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// publishTimeout ограничивает ожидание Kafka в рамках запроса
const publishTimeout = 2 * time.Second

// TopRatings - оценки, которые считаются высшими
var TopRatings = []string{"9", "10"}

// ReviewService обрабатывает бизнес-логику отзывов
// CRUD по одному документу идет через диспетчер, выборки с сортировкой и пагинацией - через репозиторий
type ReviewService struct {
	crud       repository.Executor
	reviews    repository.ReviewRepository
	publisher  infrastructure.MessagePublisher
	collection string
	now        func() time.Time
	log        zerolog.Logger
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	crud repository.Executor,
	reviews repository.ReviewRepository,
	publisher infrastructure.MessagePublisher,
	collection string,
) *ReviewService {
	return &ReviewService{
		crud:       crud,
		reviews:    reviews,
		publisher:  publisher,
		collection: collection,
		now:        time.Now,
		log:        logger.WithComponent("review-service"),
	}
}

// CreateReview сохраняет отзыв и возвращает его _id
// Перед вставкой проверяется, что отзыва с таким (title, reviewerEmail) еще нет.
// Проверка и вставка - два отдельных запроса, параллельные запросы могут создать дубликат.
func (s *ReviewService) CreateReview(ctx context.Context, payload entity.Document) (interface{}, error) {
	doc := withoutID(payload)
	if len(doc) == 0 {
		return nil, newOpError(ErrInvalidData, "Invalid data")
	}

	if filter, ok := duplicateFilter(doc); ok {
		exists, err := s.reviews.Exists(ctx, filter)
		if err != nil {
			return nil, storeError(err)
		}
		if exists {
			metrics.DuplicatesRejected.WithLabelValues(s.collection).Inc()
			return nil, newOpError(ErrDuplicate, "Review already exists for this game")
		}
	}

	res := s.crud.Execute(ctx, repository.OpCreate, s.collection, doc, nil)
	if err := resultError(res, "Review not found"); err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()

	event := entity.ReviewEvent{
		EventType:     entity.EventReviewCreated,
		ReviewID:      idString(res.InsertedID),
		Title:         stringField(doc, entity.FieldTitle),
		ReviewerEmail: stringField(doc, entity.FieldReviewerEmail),
		Rating:        doc[entity.FieldRating],
		Timestamp:     s.now(),
	}
	if err := s.publish(ctx, event.ReviewID, event); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		s.log.Warn().Err(err).Str("review_id", event.ReviewID).Msg("Failed to publish review created event")
	}

	return res.InsertedID, nil
}

// ListReviews возвращает страницу всех отзывов; пустая коллекция - не ошибка
func (s *ReviewService) ListReviews(ctx context.Context, page, limit int64) (*entity.PageResponse, error) {
	docs, total, err := s.reviews.FindPage(ctx, bson.M{}, pageWindow(page, limit))
	if err != nil {
		return nil, storeError(err)
	}
	return pageResponse(docs, page, limit, total), nil
}

// ListReviewsByEmail возвращает страницу отзывов автора
func (s *ReviewService) ListReviewsByEmail(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error) {
	filter := bson.M{entity.FieldReviewerEmail: email}

	docs, total, err := s.reviews.FindPage(ctx, filter, pageWindow(page, limit))
	if err != nil {
		return nil, storeError(err)
	}
	if total == 0 {
		return nil, newOpError(ErrNotFound, "No reviews found for this email")
	}
	return pageResponse(docs, page, limit, total), nil
}

// GetReview получает отзыв по ID
func (s *ReviewService) GetReview(ctx context.Context, id string) (entity.Document, error) {
	res := s.crud.Execute(ctx, repository.OpReadOne, s.collection, nil, bson.M{entity.FieldID: id})
	if err := resultError(res, "Review not found"); err != nil {
		return nil, err
	}
	return res.Data.(entity.Document), nil
}

// UpdateReview заменяет переданные поля отзыва (PUT)
func (s *ReviewService) UpdateReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error) {
	return s.update(ctx, repository.OpUpdate, id, payload)
}

// PatchReview частично обновляет отзыв (PATCH); семантика совпадает с UpdateReview
func (s *ReviewService) PatchReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error) {
	return s.update(ctx, repository.OpPatch, id, payload)
}

func (s *ReviewService) update(ctx context.Context, op repository.Operation, id string, payload entity.Document) (*entity.Result, error) {
	doc := withoutID(payload)
	if len(doc) == 0 {
		return nil, newOpError(ErrInvalidData, "Invalid data")
	}

	res := s.crud.Execute(ctx, op, s.collection, doc, bson.M{entity.FieldID: id})
	if err := resultError(res, "No review found or no changes"); err != nil {
		return nil, err
	}

	return &entity.Result{
		Success:       true,
		Message:       "Review updated successfully",
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteReview удаляет отзыв по ID
func (s *ReviewService) DeleteReview(ctx context.Context, id string) (*entity.Result, error) {
	res := s.crud.Execute(ctx, repository.OpDelete, s.collection, nil, bson.M{entity.FieldID: id})
	if err := resultError(res, "Review not found"); err != nil {
		return nil, err
	}
	return &entity.Result{Success: true, Message: "Review deleted successfully"}, nil
}

// TopRatedReviews возвращает отзывы с высшими оценками, от большей к меньшей
func (s *ReviewService) TopRatedReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	docs, err := s.reviews.FindByRatings(ctx, TopRatings, limit)
	if err != nil {
		return nil, storeError(err)
	}
	if len(docs) == 0 {
		return nil, newOpError(ErrNotFound, "No reviews found with rating between 9 and 10")
	}
	return docs, nil
}

// LatestGames возвращает отзывы на игры текущего и прошлого года выпуска
func (s *ReviewService) LatestGames(ctx context.Context, limit int64) ([]entity.Document, error) {
	year := s.now().Year()
	filter := bson.M{entity.FieldPublishingYear: bson.M{"$in": []string{
		strconv.Itoa(year),
		strconv.Itoa(year - 1),
	}}}
	sort := bson.D{{Key: entity.FieldPublishingYear, Value: -1}, {Key: entity.FieldID, Value: -1}}

	docs, err := s.reviews.FindSorted(ctx, filter, sort, limit)
	if err != nil {
		return nil, storeError(err)
	}
	if len(docs) == 0 {
		return nil, newOpError(ErrNotFound, fmt.Sprintf("No reviews found for games published in %d or %d", year, year-1))
	}
	return docs, nil
}

// LatestReviews возвращает последние отправленные отзывы; фильтра нет, пустой результат - не ошибка
func (s *ReviewService) LatestReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	sort := bson.D{{Key: entity.FieldTimeStamp, Value: -1}, {Key: entity.FieldID, Value: -1}}

	docs, err := s.reviews.FindSorted(ctx, bson.M{}, sort, limit)
	if err != nil {
		return nil, storeError(err)
	}
	return docs, nil
}

// IncrementClickCount атомарно увеличивает счетчик просмотров отзыва
func (s *ReviewService) IncrementClickCount(ctx context.Context, id string) (*entity.Result, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, &OpError{Kind: ErrInvalidID, Message: "Invalid id", Detail: err.Error()}
	}

	modified, err := s.reviews.IncrementClickCount(ctx, oid)
	if err != nil {
		return nil, storeError(err)
	}
	if modified == 0 {
		return nil, newOpError(ErrNotFound, "No review found or no changes")
	}

	metrics.ReviewClicks.Inc()
	return &entity.Result{Success: true, Message: "Click count incremented"}, nil
}

// PopularReviews возвращает отзывы с наибольшим clickCount
func (s *ReviewService) PopularReviews(ctx context.Context, limit int64) ([]entity.Document, error) {
	filter := bson.M{entity.FieldClickCount: bson.M{"$gt": 0}}
	sort := bson.D{{Key: entity.FieldClickCount, Value: -1}, {Key: entity.FieldID, Value: 1}}

	docs, err := s.reviews.FindSorted(ctx, filter, sort, limit)
	if err != nil {
		return nil, storeError(err)
	}
	if len(docs) == 0 {
		return nil, newOpError(ErrNotFound, "No reviews found with clicks")
	}
	return docs, nil
}

// publish сериализует событие и отправляет его с ключом key
func (s *ReviewService) publish(ctx context.Context, key string, event interface{}) error {
	return publishEvent(ctx, s.publisher, key, event)
}

func publishEvent(ctx context.Context, publisher infrastructure.MessagePublisher, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := publisher.PublishMessage(ctx, key, data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

// duplicateFilter строит фильтр проверки дубликата по title и, если есть, reviewerEmail
// Без reviewerEmail фильтр только по title: такой отзыв конфликтует с отзывом любого автора на ту же игру.
func duplicateFilter(doc entity.Document) (bson.M, bool) {
	title := stringField(doc, entity.FieldTitle)
	if title == "" {
		return nil, false
	}

	filter := bson.M{entity.FieldTitle: title}
	if email, ok := doc[entity.FieldReviewerEmail]; ok {
		filter[entity.FieldReviewerEmail] = email
	}
	return filter, true
}

func withoutID(payload entity.Document) entity.Document {
	doc := entity.Document{}
	for k, v := range payload {
		if k == entity.FieldID {
			continue
		}
		doc[k] = v
	}
	return doc
}

func stringField(doc entity.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
