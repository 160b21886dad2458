package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard error codes
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Voice-picking error codes
const (
	CodeLocationFormat    = "INVALID_LOCATION_FORMAT"
	CodeConfigNotFound    = "CONFIG_NOT_FOUND"
	CodeWorkerNotFound    = "WORKER_NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotOwner          = "NOT_OWNER"
	CodeAlreadyAssigned   = "ALREADY_ASSIGNED"
	CodeStoreError        = "STORE_ERROR"
)

// AppError represents an application error with HTTP status and error code
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Wrap wraps an existing error
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// NewAppError creates a new AppError
func NewAppError(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ErrValidation creates a validation error
func ErrValidation(message string) *AppError {
	return NewAppError(CodeValidationError, message, http.StatusBadRequest)
}

// ErrValidationWithFields creates a validation error with field details
func ErrValidationWithFields(message string, fields map[string]string) *AppError {
	return ErrValidation(message).WithDetails(fields)
}

// ErrNotFound creates a not found error
func ErrNotFound(resource string) *AppError {
	return NewAppError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ErrNotFoundWithID creates a not found error with ID
func ErrNotFoundWithID(resource, id string) *AppError {
	return ErrNotFound(resource).WithDetail("id", id)
}

// ErrConflict creates a conflict error
func ErrConflict(message string) *AppError {
	return NewAppError(CodeConflict, message, http.StatusConflict)
}

// ErrUnauthorized creates an unauthorized error
func ErrUnauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(CodeUnauthorized, message, http.StatusUnauthorized)
}

// ErrForbidden creates a forbidden error
func ErrForbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewAppError(CodeForbidden, message, http.StatusForbidden)
}

// ErrInternal creates an internal error
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return NewAppError(CodeInternalError, message, http.StatusInternalServerError)
}

// ErrBadRequest creates a bad request error
func ErrBadRequest(message string) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest)
}

// ErrServiceUnavailable creates a service unavailable error
func ErrServiceUnavailable(service string) *AppError {
	return NewAppError(CodeServiceUnavailable, fmt.Sprintf("%s is temporarily unavailable", service), http.StatusServiceUnavailable)
}

// ErrLocationFormat creates an invalid location code error.
// Location format errors are reported verbatim and never retried.
func ErrLocationFormat(code string) *AppError {
	return NewAppError(CodeLocationFormat, fmt.Sprintf("invalid location code format: %s", code), http.StatusBadRequest)
}

// ErrConfigNotFound creates an error for missing warehouse configuration
func ErrConfigNotFound(entity string) *AppError {
	return NewAppError(CodeConfigNotFound, fmt.Sprintf("warehouse configuration for %s not found", entity), http.StatusNotFound)
}

// ErrWorkerNotFound creates an error for an unresolvable worker PIN
func ErrWorkerNotFound(pin int) *AppError {
	return NewAppError(CodeWorkerNotFound, "worker not found", http.StatusUnauthorized).
		WithDetail("pin", fmt.Sprintf("%d", pin))
}

// ErrInvalidTransition creates an error for an illegal task state transition
func ErrInvalidTransition(message string) *AppError {
	return NewAppError(CodeInvalidTransition, message, http.StatusConflict)
}

// ErrNotOwner creates an error for a task operation by a non-assignee
func ErrNotOwner(message string) *AppError {
	if message == "" {
		message = "task is assigned to a different worker"
	}
	return NewAppError(CodeNotOwner, message, http.StatusForbidden)
}

// ErrAlreadyAssigned creates an error for a lost assignment race
func ErrAlreadyAssigned(taskID int64) *AppError {
	return NewAppError(CodeAlreadyAssigned, "task is already assigned", http.StatusConflict).
		WithDetail("taskId", fmt.Sprintf("%d", taskID))
}

// ErrStore wraps a record-store failure, preserving the underlying message
func ErrStore(operation string, err error) *AppError {
	return NewAppError(CodeStoreError, fmt.Sprintf("store operation %s failed", operation), http.StatusInternalServerError).Wrap(err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromError converts a standard error to an AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return ErrInternal("").Wrap(err)
}

// MapDomainError maps common domain error messages to AppErrors
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "not found"):
		return ErrNotFound("resource").Wrap(err)
	case strings.Contains(lower, "already exists"), strings.Contains(lower, "already assigned"):
		return ErrConflict(msg).Wrap(err)
	case strings.Contains(lower, "invalid"), strings.Contains(lower, "required"):
		return ErrValidation(msg).Wrap(err)
	case strings.Contains(lower, "unauthorized"):
		return ErrUnauthorized(msg).Wrap(err)
	case strings.Contains(lower, "forbidden"), strings.Contains(lower, "permission denied"):
		return ErrForbidden(msg).Wrap(err)
	default:
		return ErrInternal("").Wrap(err)
	}
}
