package infrastructure

import "context"

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// NopPublisher используется, когда брокеры Kafka не настроены
type NopPublisher struct{}

func (NopPublisher) PublishMessage(context.Context, string, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
