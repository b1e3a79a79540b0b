// Package http exposes the operational HTTP surface. The bot itself talks to
// Telegram over long polling; this server only serves health probes.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kursly/internal/shared/biztime"
)

// NewRouter builds the gin router with the health endpoint.
func NewRouter(db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", healthHandler(db, redisClient))

	return router
}

func healthHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{
			"database": "ok",
			"redis":    "ok",
		}

		if sqlDB, err := db.DB(); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else if err := sqlDB.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if err := redisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status": statusWord(status),
			"time":   biztime.NowUTC().Format(time.RFC3339),
			"checks": checks,
		})
	}
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
