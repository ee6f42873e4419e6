package handler

import (
	"errors"
	"net/http"
	"strconv"

	"chillgamer/chillgamer-service/internal/app/chillgamer/entity"
	"chillgamer/chillgamer-service/internal/app/chillgamer/service"

	"github.com/gin-gonic/gin"
)

// respondError переводит ошибку сервиса в HTTP ответ {success:false, message[, error]}
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := statusFor(err)
	body := entity.MessageResponse{Success: false, Message: "Server error"}

	var opErr *service.OpError
	if errors.As(err, &opErr) {
		body.Message = opErr.Message
	}
	if status == http.StatusInternalServerError {
		body.Error = detailOf(err)
	}

	c.JSON(status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidData), errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func detailOf(err error) string {
	var opErr *service.OpError
	if errors.As(err, &opErr) && opErr.Detail != "" {
		return opErr.Detail
	}
	return err.Error()
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entity.MessageResponse{Success: false, Message: message})
}

// bindDocument читает JSON тело как произвольный документ
func bindDocument(c *gin.Context) (entity.Document, bool) {
	var payload entity.Document
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
		badRequest(c, "Invalid data")
		return nil, false
	}
	return payload, true
}

// parsePositive возвращает def, если значение отсутствует, нечисловое или меньше 1
func parsePositive(value string, def int64) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func paging(q entity.ListQuery) (int64, int64) {
	return parsePositive(q.Page, service.DefaultPage), parsePositive(q.Limit, service.DefaultPageLimit)
}

func listLimit(c *gin.Context) int64 {
	return parsePositive(c.Query("limit"), service.DefaultListLimit)
}
