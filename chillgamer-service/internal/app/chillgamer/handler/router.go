package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chillgamer/pkg/logger"
	"chillgamer/pkg/metrics"
)

const serviceName = "chillgamer-service"

// HealthChecker проверяет доступность хранилища
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SetupRoutes настраивает все маршруты приложения
func SetupRoutes(reviewHandler *ReviewHandler, watchlistHandler *WatchlistHandler, health HealthChecker, corsOrigins []string) *gin.Engine {
	router := gin.New()

	// Recovery middleware: panic в handler не роняет процесс
	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(CORSMiddleware(corsOrigins))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Data is coming on the server...!")
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": serviceName,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Отзывы
	router.POST("/review", reviewHandler.CreateReview)
	router.GET("/reviews", reviewHandler.ListReviews)
	router.GET("/review/:id", reviewHandler.GetReview)
	router.PUT("/review/:id", reviewHandler.UpdateReview)
	router.PATCH("/review/:id", reviewHandler.PatchReview)
	router.DELETE("/review/:id", reviewHandler.DeleteReview)

	// Отзывы автора
	router.GET("/myReview", reviewHandler.ListMyReviews)
	router.PUT("/myReview/:id", reviewHandler.UpdateReview)
	router.DELETE("/myReview/:id", reviewHandler.DeleteReview)

	// Подборки
	router.GET("/latestGames", reviewHandler.LatestGames)
	router.GET("/latestReviews", reviewHandler.LatestReviews)
	router.GET("/topRatedReviews", reviewHandler.TopRatedReviews)
	router.GET("/highRatedGames", reviewHandler.TopRatedReviews)
	router.GET("/popularReviews", reviewHandler.PopularReviews)
	router.PUT("/incrementClickCount/:id", reviewHandler.IncrementClickCount)

	// Watchlist
	router.POST("/watchList", watchlistHandler.AddEntry)
	router.GET("/myWatchList", watchlistHandler.ListMyWatchlist)
	router.GET("/myWatchList/:id", watchlistHandler.GetEntry)
	router.DELETE("/myWatchList/:id", watchlistHandler.DeleteEntry)

	return router
}
