package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Error kinds reported in the "kind" field of an error body.
const (
	KindNotFound     = "not_found"
	KindForbidden    = "forbidden"
	KindConflict     = "conflict"
	KindValidation   = "validation_failure"
	KindUnavailable  = "unavailable"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an error to its HTTP status and kind.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, KindConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, errs.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, KindUnavailable
	case errors.As(err, &httpErr):
		return httpErr.Code, kindOfStatus(httpErr.Code)
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func kindOfStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusServiceUnavailable:
		return KindUnavailable
	}
	if code >= http.StatusInternalServerError {
		return KindInternal
	}
	return KindValidation
}

// NewErrorHandler renders errors as ErrorResponse. With exposeInternal unset,
// the message of a 5xx reply is generic.
func NewErrorHandler(exposeInternal bool, logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind := classify(err)
		body := ErrorResponse{Code: code, Status: "fail", Kind: kind, Message: message(err)}

		if code >= http.StatusInternalServerError {
			body.Status = "error"
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", code,
				"error", err)
			if !exposeInternal {
				body.Message = http.StatusText(code)
			}
		}

		metrics.HTTPErrorsTotal.WithLabelValues(kind, strconv.Itoa(code)).Inc()

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func message(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
		return http.StatusText(httpErr.Code)
	}
	return err.Error()
}
