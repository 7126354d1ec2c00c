package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"hello-web/internal/worker"

	"github.com/labstack/echo/v4"
)

// Executor 是可接受任務的 worker pool
type Executor interface {
	Execute(worker.Task) error
}

// Dispatch 把後續的 handler 鏈交給 pool 執行並等待結果，
// 同時處理的請求數因此受限於 pool 的 worker 數量。
// pool 已關閉或沒有存活的 worker 時回 503。
// 任務尚未開始前請求就被取消時，任務會被略過。
func Dispatch(pool Executor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var claimed atomic.Bool
			done := make(chan error, 1)
			task := func() {
				if !claimed.CompareAndSwap(false, true) {
					return
				}
				defer func() {
					// 先回覆請求，再讓 panic 照常結束這個 worker
					if r := recover(); r != nil {
						done <- fmt.Errorf("handler panic: %v", r)
						panic(r)
					}
				}()
				done <- next(c)
			}

			if err := pool.Execute(task); err != nil {
				if errors.Is(err, worker.ErrNoWorkers) {
					c.Logger().Errorf("dispatch: %v", err)
					return echo.NewHTTPError(http.StatusServiceUnavailable, "no workers available")
				}
				return echo.NewHTTPError(http.StatusServiceUnavailable, "server is shutting down")
			}

			ctx := c.Request().Context()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if claimed.CompareAndSwap(false, true) {
					return ctx.Err()
				}
				// handler 已在 worker 上執行，必須等它結束才能釋放 echo.Context
				return <-done
			}
		}
	}
}
