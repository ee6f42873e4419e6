package metrics

import (
	"time"
)

type DbOperation string

const (
	DbOpCreate    DbOperation = "create"
	DbOpRead      DbOperation = "read"
	DbOpReadOne   DbOperation = "read_one"
	DbOpUpdate    DbOperation = "update"
	DbOpPatch     DbOperation = "patch"
	DbOpDelete    DbOperation = "delete"
	DbOpCount     DbOperation = "count"
	DbOpAggregate DbOperation = "aggregate"
	DbOpIncrement DbOperation = "increment"
)

type DbTimer struct {
	service    string
	operation  DbOperation
	collection string
	start      time.Time
}

func NewDbTimer(service string, op DbOperation, collection string) *DbTimer {
	return &DbTimer{
		service:    service,
		operation:  op,
		collection: collection,
		start:      time.Now(),
	}
}

func (dt *DbTimer) ObserveDuration() {
	DbQueryDuration.WithLabelValues(dt.service, string(dt.operation), dt.collection).Observe(time.Since(dt.start).Seconds())
}

// Done фиксирует длительность и, если операция завершилась ошибкой, счётчик ошибок
func (dt *DbTimer) Done(err error) {
	dt.ObserveDuration()
	if err != nil {
		RecordDbError(dt.service, dt.operation)
	}
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordDbConnect(service string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	DbConnects.WithLabelValues(service, status).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}
