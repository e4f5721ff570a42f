package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shipments/internal/adapters/in/http/api"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/core/domain/services"
	"shipments/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps use case errors to response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, release.ErrLoadNotPending),
		errors.Is(err, release.ErrLoadNotShipped),
		errors.Is(err, bol.ErrAlreadyVoided):
		return http.StatusConflict
	case errors.Is(err, services.ErrTenantMismatch):
		return http.StatusForbidden
	case errors.Is(err, kernel.ErrInvalidQuantity),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrActorIsMissing):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, api.Error{Code: code, Message: message})
}

// ErrorHandler renders errors that escape the handlers (authentication,
// validation, routing) in the same body shape as the handlers do.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
