package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"healthadvisor.app/internal/ports"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	unmatchedRoute  = "unmatched"
)

// requestIDMiddleware honors an incoming X-Request-ID or assigns a new UUID,
// and echoes it on the response
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// observeMiddleware writes the access log and the HTTP duration histogram
func (s *HTTPServerAdapter) observeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()

		s.metrics.RecordHTTPRequest(c.Request.Method, route, status, duration)

		fields := []ports.Field{
			ports.F("request_id", c.GetString(requestIDKey)),
			ports.F("method", c.Request.Method),
			ports.F("route", route),
			ports.F("status", status),
			ports.F("duration_ms", duration.Milliseconds()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, ports.F("error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			s.logger.Error("HTTP request completed", fields...)
		case status >= 400:
			s.logger.Warn("HTTP request completed", fields...)
		default:
			s.logger.Info("HTTP request completed", fields...)
		}
	}
}
