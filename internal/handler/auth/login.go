// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"medisecure/internal/api"
	"medisecure/internal/apperr"
	"medisecure/internal/database"
	"medisecure/internal/flash"
	"medisecure/internal/middleware"
	"medisecure/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const invalidCredentials = "Invalid email or password."

// LoginHandler 驗證 Email/Password 並建立 session cookie
// @Summary     Log in
// @Description 驗證成功後設定 session cookie 並導向 /dashboard；失敗帶 flash 導回 /login
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       email    formData string true "Email"
// @Param       password formData string true "密碼"
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(db database.Querier, sessions Sessions, secureCookies bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return flash.Redirect(c, "/login", flash.Error(invalidCredentials))
		}
		if err := c.Validate(&req); err != nil {
			return flash.Redirect(c, "/login", flash.Error(invalidCredentials))
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, req.Email)
		if errors.Is(err, apperr.ErrNotFound) {
			return flash.Redirect(c, "/login", flash.Error(invalidCredentials))
		}
		if err != nil {
			return err
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return flash.Redirect(c, "/login", flash.Error(invalidCredentials))
		}

		// 重新登入時先撤銷舊 session
		if old, err := c.Cookie(session.CookieName); err == nil && old.Value != "" {
			_ = sessions.Revoke(ctx, old.Value)
		}

		token, err := sessions.Issue(ctx, *user)
		if err != nil {
			return err
		}
		middleware.SetSessionCookie(c, token, int(sessions.TTL().Seconds()), secureCookies)
		return c.Redirect(http.StatusFound, "/dashboard")
	}
}

// LogoutHandler 撤銷 session 並清除 cookie
// @Summary     Log out
// @Tags        auth
// @Success     302
// @Router      /logout [get]
func LogoutHandler(sessions Sessions, logger logrus.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(session.CookieName); err == nil && ck.Value != "" {
			if err := sessions.Revoke(c.Request().Context(), ck.Value); err != nil {
				logger.WithError(err).Warn("session revoke failed")
			}
		}
		middleware.ClearSessionCookie(c)
		return c.Redirect(http.StatusFound, "/")
	}
}
