package api

import (
	"fmt"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// MaxQueryLength bounds the q parameter, in characters
const MaxQueryLength = 256

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchParams checks what the search service itself does not.
// Missing queries and unknown types are left to the service so they surface
// with their own error codes.
func ValidateSearchParams(params SearchParams) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if n := utf8.RuneCountInString(params.Query); n > MaxQueryLength {
		result.AddError("q", fmt.Sprintf("Query cannot be longer than %d characters, got %d", MaxQueryLength, n))
	}
	if !utf8.ValidString(params.Query) {
		result.AddError("q", "Query must be valid UTF-8")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
