package entity

// Outcome - итог операции диспетчера, по нему handler выбирает HTTP статус
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeInvalidIdentifier
	OutcomeInvalidOperation
	OutcomeStoreFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidIdentifier:
		return "invalid_identifier"
	case OutcomeInvalidOperation:
		return "invalid_operation"
	case OutcomeStoreFault:
		return "store_fault"
	}
	return "unknown"
}

// Result - единый конверт ответа CRUD диспетчера
type Result struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	Data          interface{} `json:"data,omitempty"`
	InsertedID    interface{} `json:"insertedId,omitempty"`
	ModifiedCount *int64      `json:"modifiedCount,omitempty"`
	Error         string      `json:"error,omitempty"`

	Outcome Outcome `json:"-"`
}

// ListQuery - параметры постраничной выборки
// page и limit принимаются строками: нечисловые значения заменяются значениями по умолчанию
type ListQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// OwnerListQuery - выборка документов владельца (reviewerEmail или visitor)
type OwnerListQuery struct {
	Email string `form:"email" validate:"required"`
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// PageResponse - ответ постраничной выборки
type PageResponse struct {
	Data        []Document `json:"data"`
	CurrentPage int64      `json:"currentPage"`
	TotalPage   int64      `json:"totalPage"`
}

// CreatedResponse - ответ на успешное создание документа
type CreatedResponse struct {
	Success    bool        `json:"success"`
	InsertedID interface{} `json:"insertedId"`
}

// MessageResponse - ответ об успехе или ошибке с текстом
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// WatchlistFields - обязательные поля записи watchlist
type WatchlistFields struct {
	Visitor string `validate:"required"`
	WatchID string `validate:"required"`
}
