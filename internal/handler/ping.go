// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"hello-web/internal/cache"
	"hello-web/internal/database"
	"hello-web/internal/dto"

	"github.com/labstack/echo/v4"
)

// PoolStatus 提供 worker pool 的狀態
type PoolStatus interface {
	Size() int
	Alive() int
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong 與 worker 數量，並檢查資料庫與快取（若有設定）
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /api/ping [get]
func PingHandler(pool PoolStatus, db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if pool.Alive() == 0 {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "worker pool unhealthy"})
		}
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
			}
		}
		if cch != nil {
			if err := cch.Set(ctx, "ping", "pong", 10*time.Second).Err(); err != nil {
				return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, dto.PingResponse{Message: "pong", Workers: pool.Size(), Alive: pool.Alive()})
	}
}
