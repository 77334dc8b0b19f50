package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// bind decodes the request body into req and runs the validator on it.
// Decoding failures become a 400; validation failures a *ValidationError.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, &ValidationError{Violations: []FieldViolation{{
			Code:    "Invalid",
			Field:   name,
			Message: name + " must be an integer",
		}}}
	}
	return id, nil
}
