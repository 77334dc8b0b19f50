package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionKey is the echo.Context key holding the caller's session token.
const sessionKey = "session_token"

// Session copies the session token from the named cookie into the context.
// A missing cookie leaves the token empty; the core decides whether the
// operation needs one.
func Session(cookie string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(cookie); err == nil {
				c.Set(sessionKey, ck.Value)
			}
			return next(c)
		}
	}
}

// Token returns the session token injected by Session, or "".
func Token(c echo.Context) string {
	token, _ := c.Get(sessionKey).(string)
	return token
}

// SetSession writes the session cookie on the response.
func SetSession(c echo.Context, cookie, token string) {
	c.SetCookie(&http.Cookie{
		Name:     cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSession expires the session cookie on the client.
func ClearSession(c echo.Context, cookie string) {
	c.SetCookie(&http.Cookie{
		Name:     cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
