package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/voicepick-service/pkg/metrics"
)

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.IncrementHTTPRequestsInFlight()

		c.Next()

		m.DecrementHTTPRequestsInFlight()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.RecordHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// MetricsEndpoint registers the Prometheus scrape endpoint
func MetricsEndpoint(router *gin.Engine, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
