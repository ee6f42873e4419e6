package service

import (
	"math"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"
)

// Значения по умолчанию для page/limit
const (
	DefaultPage      int64 = 1
	DefaultPageLimit int64 = 6
	DefaultListLimit int64 = 5
)

// pageWindow переводит page/limit (оба >= 1) в skip/limit
// Skip насыщается на MaxInt64: такая страница заведомо пуста, но запрос остается валидным.
func pageWindow(page, limit int64) repository.Page {
	skip := int64(math.MaxInt64)
	if page-1 <= math.MaxInt64/limit {
		skip = (page - 1) * limit
	}
	return repository.Page{Skip: skip, Limit: limit}
}

func totalPages(total, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

func pageResponse(docs []entity.Document, page, limit, total int64) *entity.PageResponse {
	return &entity.PageResponse{
		Data:        docs,
		CurrentPage: page,
		TotalPage:   totalPages(total, limit),
	}
}
