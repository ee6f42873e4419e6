package repository

import (
	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type watchlistRepository struct {
	documentRepository
}

// NewWatchlistRepository создает репозиторий watchlist с индексом по (visitor, watchId)
func NewWatchlistRepository(store CollectionSource, collection string) WatchlistRepository {
	return &watchlistRepository{
		documentRepository: documentRepository{
			store:      store,
			collection: collection,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: entity.FieldVisitor, Value: 1}, {Key: entity.FieldWatchID, Value: 1}},
					Options: options.Index().SetName("visitor_watch_idx"),
				},
			},
		},
	}
}
