package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a pipeline failure
type ErrorType string

const (
	ErrTypeDataSource    ErrorType = "DATA_SOURCE"    // input file missing or unreadable
	ErrTypeSchema        ErrorType = "SCHEMA"         // required column absent
	ErrTypeDataIntegrity ErrorType = "DATA_INTEGRITY" // join key cardinality violation
	ErrTypeDataFormat    ErrorType = "DATA_FORMAT"    // unparseable date or numeric value
	ErrTypeStorage       ErrorType = "STORAGE"        // output artifact could not be written
	ErrTypeConfig        ErrorType = "CONFIG"         // invalid run configuration
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err (or any error it wraps) is an AppError of the
// given type. All pipeline errors are fatal; callers use this only to decide
// how to describe the failure, never to recover from it.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewDataSourceError creates an error for a missing or unreadable input file
func NewDataSourceError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataSource, message, cause)
}

// NewSchemaError creates an error for an input file missing a required column
func NewSchemaError(message string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil)
}

// NewDataIntegrityError creates an error for a join key cardinality violation
// or a referential mismatch the documented join policy cannot absorb
func NewDataIntegrityError(message string) *AppError {
	return NewAppError(ErrTypeDataIntegrity, message, nil)
}

// NewDataFormatError creates an error for a cell value that does not parse as
// its declared type
func NewDataFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataFormat, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
