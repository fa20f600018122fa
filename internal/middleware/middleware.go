package middleware

import (
	"context"
	"errors"
	"net/http"

	"medisecure/internal/apperr"
	"medisecure/internal/model"
	"medisecure/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SessionResolver turns a session cookie into an Identity.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Identity, error)
}

// LoadSession 解析 cookie 並把 Identity 放進 context；失敗時以匿名身分繼續
func LoadSession(resolver SessionResolver, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(session.CookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			id, err := resolver.Resolve(c.Request().Context(), ck.Value)
			switch {
			case err == nil:
				session.WithIdentity(c, id)
			case errors.Is(err, apperr.ErrAuthenticationRequired):
				ClearSessionCookie(c)
			default:
				logger.WithError(err).Warn("session lookup failed")
			}
			return next(c)
		}
	}
}

// RequireSession 未登入一律導向登入頁
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := session.FromContext(c); !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// RequireRole admits only the listed user types; everybody else is sent to
// the login page.
func RequireRole(types ...model.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := session.FromContext(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			for _, t := range types {
				if id.UserType == t {
					return next(c)
				}
			}
			return c.Redirect(http.StatusFound, "/login")
		}
	}
}

// SetSessionCookie writes the login cookie.
func SetSessionCookie(c echo.Context, token string, maxAge int, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
