// Package errors provides custom error types for journal-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrRequestFailed   = errors.New("request failed")
	ErrTradeNotFound   = errors.New("trade not found")
	ErrTradeClosed     = errors.New("trade already closed")
	ErrInputValidation = errors.New("input validation failed")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrDatabaseError   = errors.New("database error")
	ErrStoreDisabled   = errors.New("snapshot store not available")
)

// APIError represents a failed call against the journal backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api error %s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("api error %s %s [%d]: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// NewAPIError creates a new APIError. Not-found responses wrap ErrNotFound,
// everything else wraps ErrRequestFailed unless a cause is given.
func NewAPIError(method, path string, status int, message string, err error) *APIError {
	if err == nil {
		if status == 404 {
			err = ErrNotFound
		} else {
			err = ErrRequestFailed
		}
	}
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// DataError represents a snapshot or decoding error.
type DataError struct {
	DataType string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s]: %s: %v", e.DataType, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s]: %s", e.DataType, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Message:  message,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
