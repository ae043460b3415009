package middleware

import (
	"time"

	"github.com/NomadCrew/pett-server/logger"
	"github.com/gin-gonic/gin"
)

// AccessLogMiddleware logs one line per request once it has been served.
// Probes hit /health constantly, so successful requests log at debug level.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(logger.RequestIDKey),
		}

		log := logger.GetLogger()
		switch {
		case status >= 500 && status != 503:
			log.Errorw("Request served", fields...)
		case status >= 400:
			log.Infow("Request served", fields...)
		default:
			log.Debugw("Request served", fields...)
		}
	}
}
