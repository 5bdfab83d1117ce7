package controller

import (
	"net/http"

	"roundtable-api/core/errors"
	"roundtable-api/core/logger"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	ErrorDetail struct {
		Code    errors.ErrorCode `json:"code"`
		Message string           `json:"message"`
	}

	// Envelope is the only body shape the API writes.
	Envelope struct {
		Success bool          `json:"success"`
		Data    any           `json:"data,omitempty"`
		Errors  []ErrorDetail `json:"errors,omitempty"`
	}
)

type BaseController interface {
	BadRequest(appErrCode errors.ErrorCode, message string) error
	NotFound(appErrCode errors.ErrorCode, message string) error
	Unauthorized(appErrCode errors.ErrorCode, message string) error
	Forbidden(appErrCode errors.ErrorCode, message string) error
	InternalServerError(appErrCode errors.ErrorCode, message string) error
	SuccessResponse(c echo.Context, data any) error
	ErrorResponse(c echo.Context, err *errors.AppError) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessEnvelope(data any) *Envelope {
	return &Envelope{Success: true, Data: data}
}

func NewErrorEnvelope(appErrCode errors.ErrorCode, message string) *Envelope {
	return &Envelope{
		Success: false,
		Errors:  []ErrorDetail{{Code: appErrCode, Message: message}},
	}
}

// NewErrorResponse builds an echo error the global handler renders as an envelope.
func NewErrorResponse(httpStatusCode int, appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(httpStatusCode, NewErrorEnvelope(appErrCode, message))
}

func (h *responseHandler) BadRequest(appErrCode errors.ErrorCode, message string) error {
	return NewErrorResponse(http.StatusBadRequest, appErrCode, message)
}

func (h *responseHandler) NotFound(appErrCode errors.ErrorCode, message string) error {
	return NewErrorResponse(http.StatusNotFound, appErrCode, message)
}

func (h *responseHandler) Unauthorized(appErrCode errors.ErrorCode, message string) error {
	return NewErrorResponse(http.StatusUnauthorized, appErrCode, message)
}

func (h *responseHandler) Forbidden(appErrCode errors.ErrorCode, message string) error {
	return NewErrorResponse(http.StatusForbidden, appErrCode, message)
}

func (h *responseHandler) InternalServerError(appErrCode errors.ErrorCode, message string) error {
	return NewErrorResponse(http.StatusInternalServerError, appErrCode, message)
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, NewSuccessEnvelope(data))
}

func (h *responseHandler) ErrorResponse(c echo.Context, appErr *errors.AppError) error {
	if appErr == nil {
		appErr = errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}
	httpStatus := errors.HTTPStatus(appErr.Code)

	if httpStatus >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", appErr.Code,
			"message", appErr.Message,
			"error", appErr.Err,
		)
	}
	return c.JSON(httpStatus, NewErrorEnvelope(appErr.Code, appErr.Message))
}

// HTTPErrorHandler renders every error that escapes a handler as an envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := NewErrorEnvelope(errors.ErrInternalServer, "internal server error")

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		switch msg := e.Message.(type) {
		case *Envelope:
			body = msg
		case string:
			body = NewErrorEnvelope(codeForStatus(status), msg)
		default:
			body = NewErrorEnvelope(codeForStatus(status), http.StatusText(status))
		}
	case *errors.AppError:
		status = errors.HTTPStatus(e.Code)
		body = NewErrorEnvelope(e.Code, e.Message)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("HTTPErrorHandler", "status", status, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func codeForStatus(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return errors.ErrInvalidInput
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errors.ErrNotFound
	case http.StatusConflict:
		return errors.ErrAlreadyExists
	case http.StatusTooManyRequests:
		return errors.ErrRateLimited
	default:
		return errors.ErrInternalServer
	}
}
