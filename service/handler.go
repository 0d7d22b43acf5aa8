package service

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RecommendationItem 是推荐接口返回的单个条目。
type RecommendationItem struct {
	MovieID         int64   `json:"movie_id"`
	Title           string  `json:"title"`
	EstimatedRating float64 `json:"estimated_rating"`
}

// RecommendationResponse 是推荐接口的响应体。
type RecommendationResponse struct {
	UserID          int64                `json:"user_id"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// Router 构建 HTTP 路由。
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.requestLogger())

	r.GET("/health", a.handleHealth)
	r.GET("/recommendations/:user_id", a.handleRecommendations)
	return r
}

// requestLogger 为每个请求生成 request_id 并记录访问日志。
func (a *App) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		a.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	}
}

func (a *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) handleRecommendations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	items, err := a.Recommend(c.Request.Context(), userID)
	if err != nil {
		a.logger.WithError(err).WithField("user_id", userID).Error("recommend failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := RecommendationResponse{
		UserID:          userID,
		Recommendations: make([]RecommendationItem, 0, len(items)),
	}
	for _, it := range items {
		resp.Recommendations = append(resp.Recommendations, RecommendationItem{
			MovieID:         it.ID,
			Title:           it.Title,
			EstimatedRating: round3(it.Score),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
