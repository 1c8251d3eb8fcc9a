package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habit-tracker/tracker/internal/infra/metrics"
)

// Metrics records the duration of every request, labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
