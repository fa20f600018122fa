// File: internal/handler/health.go
package handler

import (
	"net/http"

	"medisecure/internal/cache"
	"medisecure/internal/database"
	"medisecure/internal/dto"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.HealthResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /healthz [get]
func HealthHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := c.Ping(reqCtx).Err(); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "cache unhealthy"})
		}
		return ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}
