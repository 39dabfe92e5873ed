package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/internal/metrics"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// CORSMiddleware adds CORS headers for cross-origin requests
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return gin.HandlerFunc(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

// RequestIDMiddleware tags every request with an ID, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggingMiddleware writes one access log line per request
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
			logger.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.String("error", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error(c.Request.Context(), "request failed", fields...)
			return
		}
		log.Info(c.Request.Context(), "request handled", fields...)
	}
}

// MetricsMiddleware records request counts and latency per route.
// Unmatched paths share one label to keep cardinality bounded.
func MetricsMiddleware(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(endpoint, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
