package handler

import (
	"context"
	"net/http"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, payload entity.Document) (interface{}, error)
	ListReviews(ctx context.Context, page, limit int64) (*entity.PageResponse, error)
	ListReviewsByEmail(ctx context.Context, email string, page, limit int64) (*entity.PageResponse, error)
	GetReview(ctx context.Context, id string) (entity.Document, error)
	UpdateReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error)
	PatchReview(ctx context.Context, id string, payload entity.Document) (*entity.Result, error)
	DeleteReview(ctx context.Context, id string) (*entity.Result, error)
	TopRatedReviews(ctx context.Context, limit int64) ([]entity.Document, error)
	LatestGames(ctx context.Context, limit int64) ([]entity.Document, error)
	LatestReviews(ctx context.Context, limit int64) ([]entity.Document, error)
	IncrementClickCount(ctx context.Context, id string) (*entity.Result, error)
	PopularReviews(ctx context.Context, limit int64) ([]entity.Document, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	insertedID, err := h.reviewService.CreateReview(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreatedResponse{Success: true, InsertedID: insertedID})
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, limit := paging(entity.ListQuery{Page: c.Query("page"), Limit: c.Query("limit")})

	result, err := h.reviewService.ListReviews(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
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

	result, err := h.reviewService.ListReviewsByEmail(c.Request.Context(), q.Email, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewService.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	result, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) PatchReview(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	result, err := h.reviewService.PatchReview(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	result, err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) TopRatedReviews(c *gin.Context) {
	h.respondList(c, h.reviewService.TopRatedReviews)
}

func (h *ReviewHandler) LatestGames(c *gin.Context) {
	h.respondList(c, h.reviewService.LatestGames)
}

func (h *ReviewHandler) LatestReviews(c *gin.Context) {
	h.respondList(c, h.reviewService.LatestReviews)
}

func (h *ReviewHandler) PopularReviews(c *gin.Context) {
	h.respondList(c, h.reviewService.PopularReviews)
}

func (h *ReviewHandler) IncrementClickCount(c *gin.Context) {
	result, err := h.reviewService.IncrementClickCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondList обслуживает выборки вида ?limit=N, отвечающие массивом документов
func (h *ReviewHandler) respondList(c *gin.Context, list func(ctx context.Context, limit int64) ([]entity.Document, error)) {
	docs, err := list(c.Request.Context(), listLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}
