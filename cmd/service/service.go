package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"hello-web/internal/cache"
	"hello-web/internal/config"
	"hello-web/internal/database"
	"hello-web/internal/router"
	"hello-web/internal/site"
	"hello-web/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "hello-web/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const (
	metricsNamespace = "hello_web"
	adminTokenTTL    = time.Hour
)

var (
	loadConfig                = config.Load
	newPgxPool                = database.NewPgxPool
	newRedisClient            = cache.NewRedisClient
	runMigrationsFn           = database.RunMigrations
	rollbackAllFn             = database.RollbackAll
	newWorkerPool             = worker.New
	startServer               = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer            = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	stdin           io.Reader = os.Stdin
	exitFunc                  = os.Exit
	cliArgs                   = func() []string { return os.Args[1:] }
)

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func newLogger(level string) *log.Logger {
	l := log.New("hello-web")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	lvl, ok := logLevels[level]
	if !ok {
		lvl = log.INFO
	}
	l.SetLevel(lvl)
	return l
}

// watchStdin 讀到單獨一行 q 時觸發關閉
func watchStdin(r io.Reader, shutdown func()) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "q" {
			shutdown()
			return
		}
	}
}

// errNoDatabase 表示需要資料庫的操作缺少 DATABASE_URL
var errNoDatabase = errors.New("DATABASE_URL 未設定")

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("參數解析失敗: %w", err)
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	if opts.MigrateDown {
		if cfg.DatabaseURL == "" {
			return errNoDatabase
		}
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
		logger.Info("all migrations rolled back")
		return nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// defer 以相反順序執行：pool 先關閉並等待 worker，最後才關 Redis 與 DB
	var db database.DB
	if cfg.DatabaseURL != "" {
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
		db, err = newPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("DB 連線失敗: %w", err)
		}
		defer db.Close()
	}

	var rdb cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err = newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warnf("關閉 Redis 連線失敗: %v", err)
			}
		}()
	}

	pool, err := newWorkerPool(cfg.Workers,
		worker.WithLogger(logger),
		worker.WithMetrics(worker.NewMetrics(reg, metricsNamespace)),
	)
	if err != nil {
		return fmt.Errorf("建立 worker pool 失敗: %w", err)
	}
	defer func() {
		logger.Info("Shutting down.")
		if err := pool.Close(); err != nil {
			logger.Warnf("關閉 worker pool 失敗: %v", err)
		}
	}()

	trigger := make(chan struct{})
	var once sync.Once
	shutdown := func() { once.Do(func() { close(trigger) }) }
	go watchStdin(stdin, shutdown)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())

	router.Setup(e, router.Deps{
		Pool:              pool,
		Loader:            site.NewLoader(cfg.PublicDir, rdb, cfg.CacheTTL, logger),
		DB:                db,
		Cache:             rdb,
		Registry:          reg,
		SleepDelay:        cfg.SleepDelay,
		JWTSecret:         cfg.JWTSecret,
		AdminPasswordHash: cfg.AdminPasswordHash,
		TokenTTL:          adminTokenTTL,
		Shutdown:          shutdown,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on http://%s with %d workers", cfg.Addr, cfg.Workers)
		errCh <- startServer(e, cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received signal")
	case <-trigger:
		logger.Info("shutdown requested")
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(sctx, e); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}
