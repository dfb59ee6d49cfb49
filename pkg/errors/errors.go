package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for boundary mapping

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// Request errors - rejected before any upstream call
	ErrorTypeValidation
	ErrorTypeNotFound

	// Infrastructure errors - upstream providers and unexpected failures
	ErrorTypeUpstream
	ErrorTypeInternal

	// System/Configuration errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeUpstream:
		return "UPSTREAM_ERROR"
	case ErrorTypeInternal:
		return "INTERNAL_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// AppError carries a category, a human message and, for upstream failures,
// the name of the service that failed.
type AppError struct {
	Type    ErrorType
	Message string
	Service string
	Cause   error
}

func (e *AppError) Error() string {
	prefix := e.Type.String()
	if e.Service != "" {
		prefix = fmt.Sprintf("%s[%s]", prefix, e.Service)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// NewUpstreamError reports a failed call to an external provider.
func NewUpstreamError(service, message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Service: service,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return Wrap(ErrorTypeInternal, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// As returns the outermost AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func isType(err error, errorType ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == errorType
}

func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

func IsUpstreamError(err error) bool {
	return isType(err, ErrorTypeUpstream)
}

func IsInternalError(err error) bool {
	return isType(err, ErrorTypeInternal)
}

func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
