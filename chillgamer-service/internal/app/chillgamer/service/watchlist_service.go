package service

import (
	"context"
	"fmt"
	"time"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/infrastructure"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"
	"chillgamer/pkg/logger"
	"chillgamer/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// WatchlistService обрабатывает бизнес-логику watchlist
type WatchlistService struct {
	crud       repository.Executor
	entries    repository.WatchlistRepository
	publisher  infrastructure.MessagePublisher
	collection string
	validator  *validator.Validate
	now        func() time.Time
	log        zerolog.Logger
}

func NewWatchlistService(
	crud repository.Executor,
	entries repository.WatchlistRepository,
	publisher infrastructure.MessagePublisher,
	collection string,
) *WatchlistService {
	return &WatchlistService{
		crud:       crud,
		entries:    entries,
		publisher:  publisher,
		collection: collection,
		validator:  validator.New(),
		now:        time.Now,
		log:        logger.WithComponent("watchlist-service"),
	}
}

// AddEntry добавляет игру в watchlist посетителя
// watchId хранится как прислан; дубликатом считается запись с теми же visitor и watchId.
func (s *WatchlistService) AddEntry(ctx context.Context, payload entity.Document) (interface{}, error) {
	doc := withoutID(payload)
	if len(doc) == 0 {
		return nil, newOpError(ErrInvalidData, "Invalid data")
	}

	fields := entity.WatchlistFields{Visitor: stringField(doc, entity.FieldVisitor)}
	if watchID, ok := doc[entity.FieldWatchID]; ok && watchID != nil {
		fields.WatchID = fmt.Sprint(watchID)
	}
	if err := s.validator.Struct(fields); err != nil {
		return nil, &OpError{Kind: ErrInvalidData, Message: "visitor and watchId are required", Detail: err.Error()}
	}

	exists, err := s.entries.Exists(ctx, bson.M{
		entity.FieldVisitor: doc[entity.FieldVisitor],
		entity.FieldWatchID: doc[entity.FieldWatchID],
	})
	if err != nil {
		return nil, storeError(err)
	}
	if exists {
		metrics.DuplicatesRejected.WithLabelValues(s.collection).Inc()
		return nil, newOpError(ErrDuplicate, "Game is already in the watchlist")
	}

	res := s.crud.Execute(ctx, repository.OpCreate, s.collection, doc, nil)
	if err := resultError(res, "Watchlist entry not found"); err != nil {
		return nil, err
	}

	metrics.WatchlistEntriesCreated.Inc()

	event := entity.WatchlistEvent{
		EventType: entity.EventWatchlistAdded,
		EntryID:   idString(res.InsertedID),
		Visitor:   fields.Visitor,
		WatchID:   doc[entity.FieldWatchID],
		Timestamp: s.now(),
	}
	if err := publishEvent(ctx, s.publisher, event.EntryID, event); err != nil {
		s.log.Warn().Err(err).Str("entry_id", event.EntryID).Msg("Failed to publish watchlist added event")
	}

	return res.InsertedID, nil
}

// ListByVisitor возвращает страницу watchlist посетителя
func (s *WatchlistService) ListByVisitor(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error) {
	docs, total, err := s.entries.FindPage(ctx, bson.M{entity.FieldVisitor: email}, pageWindow(page, limit))
	if err != nil {
		return nil, storeError(err)
	}
	if total == 0 {
		return nil, newOpError(ErrNotFound, "No watchlist entries found for this email")
	}
	return pageResponse(docs, page, limit, total), nil
}

// GetEntry получает запись watchlist по ID
func (s *WatchlistService) GetEntry(ctx context.Context, id string) (entity.Document, error) {
	res := s.crud.Execute(ctx, repository.OpReadOne, s.collection, nil, bson.M{entity.FieldID: id})
	if err := resultError(res, "Watchlist entry not found"); err != nil {
		return nil, err
	}
	return res.Data.(entity.Document), nil
}

// DeleteEntry удаляет запись watchlist по ID
func (s *WatchlistService) DeleteEntry(ctx context.Context, id string) (*entity.Result, error) {
	res := s.crud.Execute(ctx, repository.OpDelete, s.collection, nil, bson.M{entity.FieldID: id})
	if err := resultError(res, "Watchlist entry not found"); err != nil {
		return nil, err
	}
	return &entity.Result{Success: true, Message: "Watchlist entry deleted successfully"}, nil
}
