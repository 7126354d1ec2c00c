// File: internal/handler/admin/shutdown.go
package admin

import (
	"net/http"

	"hello-web/internal/dto"

	"github.com/labstack/echo/v4"
)

// ShutdownHandler 觸發服務的關閉流程後立即回應，實際關閉由主程式執行
// @Summary     關閉服務
// @Description 停止接受新連線，等待 worker pool 內所有任務完成後結束
// @Tags        admin
// @Produce     json
// @Success     202 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /api/admin/shutdown [post]
func ShutdownHandler(trigger func()) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Logger().Info("Shutdown requested via admin API.")
		trigger()
		return c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "shutting down"})
	}
}
