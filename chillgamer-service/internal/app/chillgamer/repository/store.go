package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chillgamer/pkg/logger"
	"chillgamer/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const serviceName = "chillgamer-service"

// ErrStoreClosed возвращается после Close
var ErrStoreClosed = errors.New("store is closed")

// Store владеет единственным подключением к MongoDB
// Подключение ленивое и идемпотентное: первый вызов Connect подключается и кэширует клиента,
// последующие возвращают кэшированного. Неудачная попытка ничего не кэширует.
type Store struct {
	uri      string
	database string

	mu     sync.Mutex
	client *mongo.Client
	closed bool
}

// NewStore создает Store без подключения
func NewStore(uri, database string) *Store {
	return &Store{uri: uri, database: database}
}

// NewStoreFromClient оборачивает уже подключенного клиента
func NewStoreFromClient(client *mongo.Client, database string) *Store {
	return &Store{client: client, database: database}
}

// Connect возвращает живого клиента, подключаясь при первом вызове
func (s *Store) Connect(ctx context.Context) (*mongo.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if s.client != nil {
		return s.client, nil
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(s.uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		metrics.RecordDbConnect(serviceName, err)
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		metrics.RecordDbConnect(serviceName, err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	metrics.RecordDbConnect(serviceName, nil)
	logger.Info().Str("database", s.database).Msg("Connected to MongoDB")

	s.client = client
	return client, nil
}

// Collection возвращает коллекцию по имени, подключаясь при необходимости
func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := s.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.database).Collection(name), nil
}

// Ping проверяет доступность MongoDB (используется в /health)
func (s *Store) Ping(ctx context.Context) error {
	client, err := s.Connect(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close закрывает подключение, если оно было установлено
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.client == nil {
		return nil
	}

	client := s.client
	s.client = nil
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
