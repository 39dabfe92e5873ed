package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/sajidahmed21/LearnR/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeMissingQuery      ErrorCode = "MISSING_QUERY"
	ErrorCodeInvalidSearchType ErrorCode = "INVALID_SEARCH_TYPE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeDataSourceFailure ErrorCode = "DATA_SOURCE_FAILURE"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInternalError sends a standardized internal server error.
// The cause is attached to the context for the access log, never to the body.
func SendInternalError(c *gin.Context, operation string, err error) {
	_ = c.Error(err)
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation)
}

// SendSearchError maps a search failure onto its status code and error code.
// Missing queries and unknown types are the caller's fault; anything else,
// including a failing data source, is a server error.
func SendSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, internalErrors.ErrMissingQuery):
		SendError(c, http.StatusBadRequest, ErrorCodeMissingQuery, err.Error())
	case errors.Is(err, internalErrors.ErrInvalidSearchType):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidSearchType, err.Error())
	case errors.Is(err, internalErrors.ErrDataSourceFailure):
		_ = c.Error(err)
		SendError(c, http.StatusInternalServerError, ErrorCodeDataSourceFailure, "Failed to fetch search candidates")
	default:
		SendInternalError(c, "search", err)
	}
}
