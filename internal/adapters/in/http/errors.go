package http

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps the error taxonomy of the core onto HTTP.
func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrCollaboratorUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable, please try again"
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// errorHandler renders handler errors as Error bodies. Unexpected failures are logged
// since their message is not returned to the client.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
		}
	}
}
