// File: internal/router/router.go
package router

import (
	"errors"

	"medisecure/internal/apperr"
	"medisecure/internal/cache"
	"medisecure/internal/database"
	"medisecure/internal/flash"
	"medisecure/internal/handler"
	"medisecure/internal/handler/auth"
	"medisecure/internal/handler/dashboard"
	"medisecure/internal/handler/donors"
	"medisecure/internal/handler/requests"
	"medisecure/internal/metrics"
	"medisecure/internal/middleware"
	"medisecure/internal/model"
	"medisecure/internal/realtime"
	reqs "medisecure/internal/requests"
	"medisecure/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Deps 路由所需的服務
type Deps struct {
	DB            database.DB
	Cache         cache.Cache
	Sessions      *session.Manager
	Requests      *reqs.Manager
	Hub           *realtime.Hub
	Limiter       *middleware.RateLimiter
	Logger        logrus.FieldLogger
	SecureCookies bool
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler(e, d.Logger)
	e.Use(metrics.Middleware())
	e.Use(middleware.LoadSession(d.Sessions, d.Logger))

	// 維運
	e.GET("/healthz", handler.HealthHandler(d.DB, d.Cache))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/ws", realtime.Handler(d.Hub, d.Logger))

	// 公開頁面
	e.GET("/", auth.IndexHandler())
	e.GET("/signup/:user_type", auth.SignupPageHandler())
	e.POST("/signup", auth.SignupHandler(d.DB, d.Requests))
	e.GET("/login", auth.LoginPageHandler())
	e.POST("/login", auth.LoginHandler(d.DB, d.Sessions, d.SecureCookies))
	e.GET("/logout", auth.LogoutHandler(d.Sessions, d.Logger))

	e.GET("/dashboard", dashboard.Handler(d.Requests), middleware.RequireSession)

	// 捐血者專屬
	donor := middleware.RequireRole(model.UserTypeDonor)
	e.GET("/edit_donor_profile", donors.EditProfileHandler(d.DB), donor)
	e.POST("/update_donor", donors.UpdateProfileHandler(d.DB, d.Requests), donor)
	e.GET("/handle_request/:request_id/:action", requests.HandleRequestHandler(d.Requests), donor)

	// 受血者專屬，每人限流
	e.GET("/request_blood/:donor_id", requests.RequestBloodHandler(d.Requests),
		middleware.RequireRole(model.UserTypeReceiver), d.Limiter.Middleware())
}

// errorHandler 漏接的業務錯誤轉成 flash；其他錯誤記錄後交給 echo 預設處理
func errorHandler(e *echo.Echo, logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if apperr.Recoverable(err) {
			_ = flash.Redirect(c, "/dashboard", flash.Error("Invalid request."))
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logger.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
