package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hello-web/internal/database"
	"hello-web/internal/model"
	"hello-web/internal/store"

	"github.com/labstack/echo/v4"
)

// accessLogTimeout 單筆紀錄寫入的上限
const accessLogTimeout = 5 * time.Second

// AccessLog 在回應後送出一個寫入 access_logs 的任務，不等待其完成
func AccessLog(pool Executor, db database.DB, logger echo.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			entry := model.AccessLog{
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
				Method:    c.Request().Method,
				Path:      c.Request().URL.Path,
				Status:    responseStatus(c, err),
				Duration:  time.Since(start),
				CreatedAt: start,
			}
			submitErr := pool.Execute(func() {
				ctx, cancel := context.WithTimeout(context.Background(), accessLogTimeout)
				defer cancel()
				if err := store.InsertAccessLog(ctx, db, entry); err != nil {
					logger.Warnf("access log: %v", err)
				}
			})
			if submitErr != nil {
				logger.Warnf("access log dropped for %s %s: %v", entry.Method, entry.Path, submitErr)
			}
			return err
		}
	}
}

// responseStatus 推算最終狀態碼；錯誤尚未交給 HTTPErrorHandler 處理
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
