// File: internal/router/router.go
package router

import (
	"time"

	"hello-web/internal/cache"
	"hello-web/internal/database"
	"hello-web/internal/handler"
	"hello-web/internal/handler/admin"
	"hello-web/internal/middleware"
	"hello-web/internal/site"
	"hello-web/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 是註冊路由所需的相依元件；DB、Cache 可為 nil，管理員設定留空則不註冊 admin 路由
type Deps struct {
	Pool     *worker.ThreadPool
	Loader   *site.Loader
	DB       database.DB
	Cache    cache.Cache
	Registry *prometheus.Registry

	SleepDelay        time.Duration
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration

	// Shutdown 觸發主程式的關閉流程
	Shutdown func()
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/ping", handler.PingHandler(d.Pool, d.DB, d.Cache))
	if d.DB != nil {
		api.GET("/hits", handler.HitsHandler(d.DB))
	}

	if d.JWTSecret != "" && d.AdminPasswordHash != "" {
		requireAdmin := middleware.RequireAdmin(d.JWTSecret)
		api.POST("/admin/token", admin.TokenHandler(d.AdminPasswordHash, d.JWTSecret, d.TokenTTL))
		api.POST("/admin/shutdown", admin.ShutdownHandler(d.Shutdown), requireAdmin)
		api.POST("/admin/cache/purge", admin.PurgeCacheHandler(d.Loader), requireAdmin)
	}

	// 站台頁面一律交給 worker pool 執行；Recover 必須在 Dispatch 之內，panic 才會在 worker 上被攔下
	var siteMW []echo.MiddlewareFunc
	if d.DB != nil {
		siteMW = append(siteMW, middleware.AccessLog(d.Pool, d.DB, e.Logger))
	}
	siteMW = append(siteMW, middleware.Dispatch(d.Pool), echomw.Recover())
	e.Any("/*", handler.SiteHandler(d.Loader, d.SleepDelay), siteMW...)
}
