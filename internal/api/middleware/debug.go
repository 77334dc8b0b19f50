package middleware

import "github.com/labstack/echo/v4"

// DebugOnly hides a route unless enabled, answering 404 as if it did not exist.
func DebugOnly(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}
