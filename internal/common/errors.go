package common

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the scrape and query paths.
var (
	// ErrInvalidInput indicates a malformed batch or query request
	ErrInvalidInput = errors.New("invalid input")
	// ErrNavigationFailure indicates a page could not be loaded (timeout, unreachable host, HTTP error)
	ErrNavigationFailure = errors.New("navigation failure")
	// ErrExtractionFailure indicates a loaded page could not be scanned for media
	ErrExtractionFailure = errors.New("extraction failure")
	// ErrSessionLaunch indicates the rendering engine could not be started
	ErrSessionLaunch = errors.New("session launch failure")
	// ErrPersistence indicates the bulk write of extracted media failed
	ErrPersistence = errors.New("persistence failure")
	// ErrStorageUnavailable indicates the media store could not be read
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Classify tags err with a taxonomy sentinel so callers can test it with errors.Is
// while keeping the original cause in the chain.
func Classify(kind error, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &classifiedError{kind: kind, cause: err}
}

type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.cause)
}

func (e *classifiedError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets a ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NetworkError represents a failure to load a page
type NetworkError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *NetworkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("network error for '%s': %s: %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("network error for '%s': %s", e.URL, e.Reason)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// Is lets a NetworkError match ErrNavigationFailure.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNavigationFailure
}

// NewNetworkError creates a new network error
func NewNetworkError(url, reason string, wrapped error) *NetworkError {
	return &NetworkError{
		URL:     url,
		Reason:  reason,
		Wrapped: wrapped,
	}
}
