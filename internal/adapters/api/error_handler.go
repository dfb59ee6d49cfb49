package api

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// handleError maps application errors to HTTP responses:
// validation 422, upstream 503, everything else 500
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var (
		statusCode int
		detail     string
	)

	switch {
	case errors.IsValidationError(err):
		statusCode = http.StatusUnprocessableEntity
		detail = validationDetail(err)
	case errors.IsUpstreamError(err):
		statusCode = http.StatusServiceUnavailable
		detail = "Error communicating with external services: " + describeError(err)
	default:
		statusCode = http.StatusInternalServerError
		detail = "Internal server error: " + describeError(err)
	}

	s.abortWithError(c, statusCode, detail, err)
}

// handleAlertStatusError reports every non-validation failure as 500 with the
// error text as detail
func (s *HTTPServerAdapter) handleAlertStatusError(c *gin.Context, err error) {
	if errors.IsValidationError(err) {
		s.abortWithError(c, http.StatusUnprocessableEntity, validationDetail(err), err)
		return
	}
	s.abortWithError(c, http.StatusInternalServerError, describeError(err), err)
}

func (s *HTTPServerAdapter) abortWithError(c *gin.Context, statusCode int, detail string, err error) {
	_ = c.Error(err)

	if statusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			ports.F("request_id", c.GetString(requestIDKey)),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", statusCode),
			ports.F("error", err.Error()))
		captureError(c, err)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{Detail: detail})
}

// captureError reports to Sentry when the request carries a hub
func captureError(c *gin.Context, err error) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", c.GetString(requestIDKey))
		if appErr, ok := errors.As(err); ok {
			scope.SetTag("error_type", appErr.Type.String())
			if appErr.Service != "" {
				scope.SetTag("service", appErr.Service)
			}
		}
		hub.CaptureException(err)
	})
}

func validationDetail(err error) string {
	if appErr, ok := errors.As(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// describeError renders an error chain without type prefixes, e.g.
// "air-quality: unexpected status 502: GET /api/air-quality/city returned \"502 Bad Gateway\""
func describeError(err error) string {
	appErr, ok := errors.As(err)
	if !ok {
		return err.Error()
	}

	text := appErr.Message
	if appErr.Service != "" {
		text = appErr.Service + ": " + text
	}
	if appErr.Cause != nil {
		text += ": " + describeError(appErr.Cause)
	}
	return text
}
