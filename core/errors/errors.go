package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// Wire codes. These strings are part of the API contract.
const (
	ErrUnauthorized   ErrorCode = "AUTH_ERROR"
	ErrForbidden      ErrorCode = "FORBIDDEN"
	ErrBlocked        ErrorCode = "BLOCKED"
	ErrInvalidInput   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "CONFLICT"
	ErrRateLimited    ErrorCode = "RATE_LIMITED"
	ErrDatabase       ErrorCode = "DATABASE_ERROR"
	ErrInternalServer ErrorCode = "SERVER_ERROR"
)

// AppError is the only error shape services hand back to controllers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
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

// HTTPStatus maps an error code to the status used on the wire.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden, ErrBlocked:
		return http.StatusForbidden
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrAlreadyExists:
		return http.StatusConflict
	case ErrRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As unwraps err into an *AppError, falling back to SERVER_ERROR.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(ErrInternalServer, "internal server error", err)
}

func New(message string) error {
	return stdErrors.New(message)
}

func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}
