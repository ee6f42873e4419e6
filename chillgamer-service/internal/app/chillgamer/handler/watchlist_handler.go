package handler

import (
	"context"
	"net/http"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type WatchlistServiceInterface interface {
	AddEntry(ctx context.Context, payload entity.Document) (interface{}, error)
	ListByVisitor(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error)
	GetEntry(ctx context.Context, id string) (entity.Document, error)
	DeleteEntry(ctx context.Context, id string) (*entity.Result, error)
}

type WatchlistHandler struct {
	watchlistService WatchlistServiceInterface
	validator        *validator.Validate
}

func NewWatchlistHandler(watchlistService WatchlistServiceInterface) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
		validator:        validator.New(),
	}
}

func (h *WatchlistHandler) AddEntry(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	insertedID, err := h.watchlistService.AddEntry(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreatedResponse{Success: true, InsertedID: insertedID})
}

func (h *WatchlistHandler) ListMyWatchlist(c *gin.Context) {
	var q entity.OwnerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query")
		return
	}
	if err := h.validator.Struct(q); err != nil {
		badRequest(c, "Email is required")
		return
	}
	page, limit := paging(entity.ListQuery{Page: q.Page, Limit: q.Limit})

	result, err := h.watchlistService.ListByVisitor(c.Request.Context(), q.Email, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *WatchlistHandler) GetEntry(c *gin.Context) {
	doc, err := h.watchlistService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *WatchlistHandler) DeleteEntry(c *gin.Context) {
	result, err := h.watchlistService.DeleteEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
