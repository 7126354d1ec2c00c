// File: internal/handler/admin/purge.go
package admin

import (
	"context"
	"net/http"

	"hello-web/internal/dto"

	"github.com/labstack/echo/v4"
)

// Purger 清除頁面快取
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// PurgeCacheHandler 清除頁面快取
// @Summary     清除頁面快取
// @Tags        admin
// @Produce     json
// @Success     200 {object} dto.PurgeResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /api/admin/cache/purge [post]
func PurgeCacheHandler(p Purger) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := p.Purge(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to purge cache"})
		}
		return c.JSON(http.StatusOK, dto.PurgeResponse{Purged: n})
	}
}
