package repository

import (
	"errors"
	"fmt"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidIdentifier - строка не является ObjectID
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ParseID - единственное место приведения строкового идентификатора к ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return oid, nil
}

// coerceFilterID возвращает копию фильтра, в которой строковый _id заменен на ObjectID
func coerceFilterID(filter bson.M) (bson.M, error) {
	coerced := bson.M{}
	for k, v := range filter {
		coerced[k] = v
	}

	raw, ok := coerced[entity.FieldID]
	if !ok {
		return coerced, nil
	}

	switch id := raw.(type) {
	case primitive.ObjectID:
		return coerced, nil
	case string:
		oid, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		coerced[entity.FieldID] = oid
		return coerced, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidIdentifier, raw)
	}
}
