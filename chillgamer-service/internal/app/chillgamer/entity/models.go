package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Document - произвольный документ коллекции
// Отзывы и записи watchlist не имеют фиксированной схемы: сервис принимает поля как есть
type Document = bson.M

// Поля отзыва, с которыми работает сервис
const (
	FieldID             = "_id"
	FieldTitle          = "title"
	FieldRating         = "rating"
	FieldPublishingYear = "publishingYear"
	FieldReviewerEmail  = "reviewerEmail"
	FieldClickCount     = "clickCount"
	FieldTimeStamp      = "timeStamp"
)

// Поля записи watchlist
const (
	FieldVisitor = "visitor"
	FieldWatchID = "watchId"
)

// Типы событий
const (
	EventReviewCreated  = "REVIEW_CREATED"
	EventWatchlistAdded = "WATCHLIST_ADDED"
)

type ReviewEvent struct {
	EventType     string      `json:"event_type"` // REVIEW_CREATED
	ReviewID      string      `json:"review_id"`
	Title         string      `json:"title,omitempty"`
	ReviewerEmail string      `json:"reviewer_email,omitempty"`
	Rating        interface{} `json:"rating,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

type WatchlistEvent struct {
	EventType string      `json:"event_type"` // WATCHLIST_ADDED
	EntryID   string      `json:"entry_id"`
	Visitor   string      `json:"visitor"`
	WatchID   interface{} `json:"watch_id"`
	Timestamp time.Time   `json:"timestamp"`
}
