// File: internal/handler/hits.go
package handler

import (
	"fmt"
	"net/http"

	"hello-web/internal/database"
	"hello-web/internal/dto"
	"hello-web/internal/store"

	"github.com/labstack/echo/v4"
)

// HitsHandler 列出各路徑的請求次數
// @Summary     Path hit counts
// @Description 依 access log 統計各路徑請求次數
// @Tags        stats
// @Produce     json
// @Param       limit query int false "最多回傳幾筆 (0 = 不限)"
// @Success     200 {array}  dto.PathHitsResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /api/hits [get]
func HitsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var q dto.HitsQuery
		if err := c.Bind(&q); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的查詢參數: %v", err)})
		}
		if err := c.Validate(&q); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		hits, err := store.ListPathHits(c.Request().Context(), db, q.Limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to load hits"})
		}

		resp := make([]dto.PathHitsResponse, 0, len(hits))
		for _, h := range hits {
			resp = append(resp, dto.PathHitsResponse{Path: h.Path, Hits: h.Hits, LastSeen: h.LastSeen})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
