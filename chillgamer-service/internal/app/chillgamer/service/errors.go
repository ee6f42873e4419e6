package service

import (
	"errors"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrInvalidData = errors.New("invalid data")
	ErrInvalidID   = errors.New("invalid identifier")
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("duplicate")
	ErrStore       = errors.New("store failure")
)

// OpError несет вид ошибки (одну из Err*), текст для клиента и деталь причины
type OpError struct {
	Kind    error
	Message string
	Detail  string
}

func (e *OpError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *OpError) Unwrap() error {
	return e.Kind
}

func newOpError(kind error, message string) *OpError {
	return &OpError{Kind: kind, Message: message}
}

func storeError(err error) *OpError {
	return &OpError{Kind: ErrStore, Message: "Server error", Detail: err.Error()}
}

// resultError переводит неуспешный конверт диспетчера в OpError
// notFound - текст для клиента при Outcome == NotFound
func resultError(res entity.Result, notFound string) error {
	if res.Success {
		return nil
	}

	switch res.Outcome {
	case entity.OutcomeNotFound:
		return newOpError(ErrNotFound, notFound)
	case entity.OutcomeInvalidIdentifier:
		return &OpError{Kind: ErrInvalidID, Message: "Invalid id", Detail: res.Error}
	case entity.OutcomeInvalidOperation:
		return &OpError{Kind: ErrInvalidData, Message: res.Message, Detail: res.Error}
	}
	return &OpError{Kind: ErrStore, Message: "Server error", Detail: res.Error}
}
