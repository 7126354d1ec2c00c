// File: internal/handler/admin/token.go
package admin

import (
	"fmt"
	"net/http"
	"time"

	"hello-web/internal/dto"
	"hello-web/internal/service"

	"github.com/labstack/echo/v4"
)

// TokenHandler 以管理員密碼換取 JWT
// @Summary     取得管理員令牌
// @Description 以管理員密碼驗證，回傳存取令牌與到期時間
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       password formData string true "管理員密碼"
// @Success     200 {object} dto.AdminTokenResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /api/admin/token [post]
func TokenHandler(passwordHash, secret string, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.AdminTokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的表單資料: %v", err)})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		if err := service.AuthenticateAdmin(passwordHash, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		}

		token, exp, err := service.IssueAdminToken(secret, ttl)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}
		return c.JSON(http.StatusOK, dto.AdminTokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp})
	}
}
