package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// RequestLogger пишет одну строку на запрос: метод, маршрут, статус, длительность
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		kv := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := UserIDFromContext(c); ok {
			kv = append(kv, "user_id", userID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("[HTTP] request failed", kv...)
		case status >= 400:
			log.Warn("[HTTP] request rejected", kv...)
		default:
			log.Info("[HTTP] request", kv...)
		}
	}
}
