package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/api/handler"
	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps business-rule errors to their HTTP status and wire code.
//   - Renders one envelope entry per rejected field on validation errors.
//   - Logs unexpected errors internally without leaking details to the client.
//
// Every response has the shape {"errors":[{"errorCode","field","message"}]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		items := make([]handler.ErrorItem, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			items = append(items, handler.ErrorItem{ErrorCode: v.Code, Field: v.Field, Message: v.Message})
		}
		return http.StatusBadRequest, handler.ErrorResponse{Errors: items}
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return statusOf(de.Kind), single(string(de.Kind), de.Field, de.Message())
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := strings.ReplaceAll(http.StatusText(he.Code), " ", "")
		return he.Code, single(code, "", fmt.Sprintf("%v", he.Message))
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, single("Internal", "", "internal server error")
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotLoggedIn:
		return http.StatusUnauthorized
	case domain.KindNotAdmin, domain.KindNotClient:
		return http.StatusForbidden
	case domain.KindCategoryNotFound, domain.KindProductNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func single(code, field, message string) handler.ErrorResponse {
	return handler.ErrorResponse{Errors: []handler.ErrorItem{{ErrorCode: code, Field: field, Message: message}}}
}
