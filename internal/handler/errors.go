// Package handler holds the HTTP handlers shared across route groups and the
// mapping from service errors to responses.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"eventhub/internal/common"
	"eventhub/internal/dto"

	"github.com/labstack/echo/v4"
)

// ErrorStatus maps the common error taxonomy to an HTTP status. Unmapped
// errors are 500.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes a mapped error as {message}. msg replaces the default text when
// set. Unmapped errors go back to Echo's HTTPErrorHandler.
func Fail(c echo.Context, err error, msg string) error {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError && !errors.Is(err, common.ErrGateway) {
		return err
	}
	if msg == "" {
		msg = defaultMessage(err)
	}
	return c.JSON(status, dto.HTTPError{Message: msg})
}

func defaultMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		if detail := after(err.Error(), common.ErrValidation.Error()+": "); detail != "" {
			return detail
		}
		return "invalid request"
	case errors.Is(err, common.ErrConflict):
		return "already exists"
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return "not authorized"
	case errors.Is(err, common.ErrForbidden):
		return common.ErrForbidden.Error()
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

func after(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return ""
}

// BadRequest reports a bind or validation failure.
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
}
