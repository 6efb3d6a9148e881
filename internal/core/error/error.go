package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// CatalogErrorMessage describes a venue catalog that could not be loaded.
	CatalogErrorMessage = "venue catalog unavailable"
	// ProfileErrorMessage describes a profile data source failure.
	ProfileErrorMessage = "profile data source unavailable"
	// ReasoningErrorMessage describes a reasoning model failure.
	ReasoningErrorMessage = "reasoning model unavailable"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// WrapCatalog wraps a catalog loading error with a consistent status and message.
func WrapCatalog(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusServiceUnavailable, CatalogErrorMessage)
}

// WrapProfile wraps a profile source error with a consistent status and message.
func WrapProfile(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusServiceUnavailable, ProfileErrorMessage)
}

// WrapReasoning wraps a reasoning model error with a consistent status and message.
func WrapReasoning(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ReasoningErrorMessage)
}
