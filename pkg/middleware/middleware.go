package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
)

// RequestIDHeader is the header used for request IDs
const RequestIDHeader = "X-Request-ID"

// RequestID middleware generates or extracts a request ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger middleware logs HTTP requests
func Logger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if path == "/health" || path == "/ready" || path == "/metrics" {
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		requestLogger := logger.WithContext(c.Request.Context()).WithFields(map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"statusCode": statusCode,
			"durationMs": duration.Milliseconds(),
			"clientIp":   c.ClientIP(),
		})

		switch {
		case statusCode >= 500:
			requestLogger.Error("Request failed")
		case statusCode >= 400:
			requestLogger.Warn("Request error")
		default:
			requestLogger.Info("Request completed")
		}
	}
}

// Recovery middleware recovers from panics
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Panic(c.Request.Context(), recovered)
				AbortWithAppError(c, errors.ErrInternal(""))
			}
		}()
		c.Next()
	}
}

// CORS middleware handles cross-origin requests
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Setup configures all standard middleware for a gin engine
func Setup(router *gin.Engine, logger *logging.Logger) {
	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(Logger(logger))
	router.Use(CORS())
	router.Use(ErrorHandler(logger))
}

// HealthCheck returns a health check handler
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadinessCheck returns a readiness check handler that pings dependencies
func ReadinessCheck(checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := make(map[string]string)
		ready := true

		for name, check := range checks {
			if err := check(); err != nil {
				results[name] = "unavailable: " + err.Error()
				ready = false
			} else {
				results[name] = "ok"
			}
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ready":  ready,
			"checks": results,
		})
	}
}

// NoRoute handles unmatched routes
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondWithError(c, errors.ErrNotFound("route"))
	}
}

// NoMethod handles unsupported methods
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondWithError(c, errors.NewAppError(
			"METHOD_NOT_ALLOWED",
			"method not allowed",
			http.StatusMethodNotAllowed,
		))
	}
}
