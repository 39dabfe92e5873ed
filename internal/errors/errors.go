package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrMissingQuery is returned when a search has no query string
	ErrMissingQuery = errors.New("no search query provided")

	// ErrInvalidSearchType is returned when the search type is not recognised
	ErrInvalidSearchType = errors.New("unknown search type")

	// ErrDataSourceFailure is returned when fetching candidates from the data source fails
	ErrDataSourceFailure = errors.New("data source failure")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidSearchTypeError represents an unknown search type with context
type InvalidSearchTypeError struct {
	SearchType string
}

func (e *InvalidSearchTypeError) Error() string {
	if e.SearchType == "" {
		return "search type is required"
	}
	return fmt.Sprintf("unknown search type '%s'", e.SearchType)
}

func (e *InvalidSearchTypeError) Is(target error) bool {
	return target == ErrInvalidSearchType
}

// NewInvalidSearchTypeError creates a new InvalidSearchTypeError
func NewInvalidSearchTypeError(searchType string) *InvalidSearchTypeError {
	return &InvalidSearchTypeError{SearchType: searchType}
}

// DataSourceError wraps a failed candidate fetch
type DataSourceError struct {
	Field string
	Err   error
}

func (e *DataSourceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to fetch candidates by %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("failed to fetch candidates: %v", e.Err)
}

func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSourceFailure
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// NewDataSourceError creates a new DataSourceError
func NewDataSourceError(field string, err error) *DataSourceError {
	return &DataSourceError{Field: field, Err: err}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
