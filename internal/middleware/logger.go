package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/pkg/logger"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		)

		if errs := c.Errors.String(); errs != "" {
			logger.Warn("request errors", "path", path, "errors", errs)
		}
	}
}
