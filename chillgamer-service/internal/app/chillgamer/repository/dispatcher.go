package repository

import (
	"context"
	"errors"
	"fmt"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Operation - вид CRUD операции
// Набор значений закрыт: вне пакета новые операции создать нельзя, нулевое значение невалидно
type Operation struct {
	name string
}

var (
	OpCreate  = Operation{name: "create"}
	OpRead    = Operation{name: "read"}
	OpReadOne = Operation{name: "readOne"}
	OpUpdate  = Operation{name: "update"}
	OpPatch   = Operation{name: "patch"}
	OpDelete  = Operation{name: "delete"}
)

var operations = []Operation{OpCreate, OpRead, OpReadOne, OpUpdate, OpPatch, OpDelete}

// ErrInvalidOperation - неизвестное имя операции
var ErrInvalidOperation = errors.New("invalid operation")

func (o Operation) String() string {
	if o.name == "" {
		return "invalid"
	}
	return o.name
}

// ParseOperation приводит строковое имя к Operation
func ParseOperation(name string) (Operation, error) {
	for _, op := range operations {
		if op.name == name {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrInvalidOperation, name)
}

// CollectionSource выдает коллекцию по имени
type CollectionSource interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

// Dispatcher выполняет одну CRUD операцию над коллекцией и возвращает единый конверт
// Ошибки хранилища никогда не выходят за пределы Execute: они превращаются в конверт с Success=false
type Dispatcher struct {
	store CollectionSource
}

func NewDispatcher(store CollectionSource) *Dispatcher {
	return &Dispatcher{store: store}
}

// Execute выполняет операцию op над collection
// payload игнорируется для операций чтения; строковый _id в filter приводится к ObjectID
func (d *Dispatcher) Execute(ctx context.Context, op Operation, collection string, payload, filter bson.M) entity.Result {
	switch op {
	case OpCreate, OpUpdate, OpPatch:
		if len(payload) == 0 {
			return failure(entity.OutcomeInvalidOperation, "Payload is required", nil)
		}
	case OpRead, OpReadOne, OpDelete:
	default:
		return failure(entity.OutcomeInvalidOperation, "Invalid operation", nil)
	}
	if collection == "" {
		return failure(entity.OutcomeInvalidOperation, "Collection name is required", nil)
	}

	filter, err := coerceFilterID(filter)
	if err != nil {
		return failure(entity.OutcomeInvalidIdentifier, "Invalid identifier", err)
	}

	coll, err := d.store.Collection(ctx, collection)
	if err != nil {
		return failure(entity.OutcomeStoreFault, "Server error", err)
	}

	timer := metrics.NewDbTimer(serviceName, dbOperation(op), collection)

	var result entity.Result
	switch op {
	case OpCreate:
		result, err = d.create(ctx, coll, payload)
	case OpRead:
		result, err = d.read(ctx, coll, filter)
	case OpReadOne:
		result, err = d.readOne(ctx, coll, filter)
	case OpUpdate, OpPatch:
		result, err = d.update(ctx, coll, payload, filter)
	case OpDelete:
		result, err = d.delete(ctx, coll, filter)
	}

	timer.Done(err)
	if err != nil {
		return failure(entity.OutcomeStoreFault, "Server error", err)
	}
	return result
}

func (d *Dispatcher) create(ctx context.Context, coll *mongo.Collection, payload bson.M) (entity.Result, error) {
	res, err := coll.InsertOne(ctx, payload)
	if err != nil {
		return entity.Result{}, err
	}
	return entity.Result{
		Success:    true,
		Message:    "Document created successfully",
		InsertedID: res.InsertedID,
	}, nil
}

func (d *Dispatcher) read(ctx context.Context, coll *mongo.Collection, filter bson.M) (entity.Result, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return entity.Result{}, err
	}
	defer cursor.Close(ctx)

	docs := []entity.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return entity.Result{}, err
	}
	return entity.Result{
		Success: true,
		Message: "Documents retrieved successfully",
		Data:    docs,
	}, nil
}

func (d *Dispatcher) readOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (entity.Result, error) {
	var doc entity.Document
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return failure(entity.OutcomeNotFound, "Document not found", nil), nil
	}
	if err != nil {
		return entity.Result{}, err
	}
	return entity.Result{
		Success: true,
		Message: "Document retrieved successfully",
		Data:    doc,
	}, nil
}

func (d *Dispatcher) update(ctx context.Context, coll *mongo.Collection, payload, filter bson.M) (entity.Result, error) {
	fields := bson.M{}
	for k, v := range payload {
		// _id неизменяем, $set по нему отклоняется сервером
		if k == entity.FieldID {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return failure(entity.OutcomeInvalidOperation, "Payload is required", nil), nil
	}

	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return entity.Result{}, err
	}
	if res.ModifiedCount == 0 {
		return failure(entity.OutcomeNotFound, "No document found or no changes", nil), nil
	}

	modified := res.ModifiedCount
	return entity.Result{
		Success:       true,
		Message:       "Document updated successfully",
		ModifiedCount: &modified,
	}, nil
}

func (d *Dispatcher) delete(ctx context.Context, coll *mongo.Collection, filter bson.M) (entity.Result, error) {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return entity.Result{}, err
	}
	if res.DeletedCount == 0 {
		return failure(entity.OutcomeNotFound, "Document not found", nil), nil
	}
	return entity.Result{
		Success: true,
		Message: "Document deleted successfully",
	}, nil
}

func failure(outcome entity.Outcome, message string, err error) entity.Result {
	result := entity.Result{
		Success: false,
		Message: message,
		Outcome: outcome,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func dbOperation(op Operation) metrics.DbOperation {
	switch op {
	case OpCreate:
		return metrics.DbOpCreate
	case OpRead:
		return metrics.DbOpRead
	case OpReadOne:
		return metrics.DbOpReadOne
	case OpUpdate:
		return metrics.DbOpUpdate
	case OpPatch:
		return metrics.DbOpPatch
	case OpDelete:
		return metrics.DbOpDelete
	}
	return metrics.DbOperation("invalid")
}
