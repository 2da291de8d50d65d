package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeBadRequest            = "BAD_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeDuplicateRequest      = "DUPLICATE_REQUEST"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeTooManyRequests       = "TOO_MANY_REQUESTS"
	CodeCompletionUnavailable = "COMPLETION_UNAVAILABLE"
	CodeCompletionTimeout     = "COMPLETION_TIMEOUT"
	CodePersistence           = "PERSISTENCE_ERROR"
	CodeInternal              = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation reports missing or malformed input fields.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest, nil)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

// DuplicateRequest is returned when a uniqueness rule over a tuple
// (property+visitor, property+visitor+owner, ...) rejects a write.
func DuplicateRequest(message string) *AppError {
	return New(CodeDuplicateRequest, message, http.StatusConflict, nil)
}

// InvalidTransition is the guard error of the visit request state machine.
func InvalidTransition(from, to string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("cannot move visit request from %s to %s", from, to), http.StatusConflict, nil)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func CompletionUnavailable(err error) *AppError {
	return New(CodeCompletionUnavailable, "Completion service unavailable", http.StatusBadGateway, err)
}

func CompletionTimeout(err error) *AppError {
	return New(CodeCompletionTimeout, "Completion did not finish in time", http.StatusGatewayTimeout, err)
}

func Persistence(message string, err error) *AppError {
	return New(CodePersistence, message, http.StatusInternalServerError, err)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As is re-exported so callers don't have to import both error packages.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
