// File: internal/handler/site.go
package handler

import (
	"net/http"
	"time"

	"hello-web/internal/dto"
	"hello-web/internal/site"

	"github.com/labstack/echo/v4"
)

// SiteHandler 回應靜態頁面：/、/sleep、/favicon.ico，其餘回 404 頁面
// @Summary     Static site
// @Description GET / 回傳 hello.html；GET /sleep 延遲後回傳 hello.html；GET /favicon.ico 回傳 SVG；其餘回 404.html
// @Tags        site
// @Produce     html
// @Success     200 {string} string "page"
// @Failure     404 {string} string "not found page"
// @Failure     500 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      / [get]
func SiteHandler(loader *site.Loader, delay time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		page := site.Resolve(req.Method, req.URL.Path)

		if page.Slow && delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-req.Context().Done():
				return req.Context().Err()
			}
		}

		body, err := loader.Load(req.Context(), page.File)
		if err != nil {
			c.Logger().Errorf("load page: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to load page"})
		}
		return c.Blob(page.Status, page.ContentType, body)
	}
}
