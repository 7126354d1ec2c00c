package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"

	"hello-web/internal/cache"
	"hello-web/internal/config"
	"hello-web/internal/database"
	"hello-web/internal/worker"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn = database.RollbackAll
	newWorkerPool = worker.New
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	stdin = os.Stdin
	exitFunc = os.Exit
	cliArgs = func() []string { return os.Args[1:] }
}

// stubAll 將所有外部相依換成不需網路的假實作，並回傳可修改的設定
func stubAll(t *testing.T) *config.Config {
	t.Helper()
	t.Cleanup(restoreGlobals)

	cfg := config.Default()
	cfg.PublicDir = t.TempDir()
	cfg.Workers = 2
	cfg.LogLevel = "off"
	cfg.ShutdownTimeout = time.Second

	loadConfig = func(string) (*config.Config, error) { return &cfg, nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	rollbackAllFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return nil }
	shutdownServer = func(context.Context, *echo.Echo) error { return nil }
	stdin = strings.NewReader("")
	exitFunc = func(int) {}
	cliArgs = func() []string { return nil }
	return &cfg
}

// blockingServer 讓 startServer 阻塞直到 shutdownServer 被呼叫
func blockingServer(t *testing.T) *bool {
	stopped := make(chan struct{})
	var once sync.Once
	called := false
	startServer = func(*echo.Echo, string) error {
		<-stopped
		return http.ErrServerClosed
	}
	shutdownServer = func(context.Context, *echo.Echo) error {
		called = true
		once.Do(func() { close(stopped) })
		return nil
	}
	t.Cleanup(func() { once.Do(func() { close(stopped) }) })
	return &called
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestNewLogger(t *testing.T) {
	require.Equal(t, log.DEBUG, newLogger("debug").Level())
	require.Equal(t, log.OFF, newLogger("off").Level())
	require.Equal(t, log.INFO, newLogger("bogus").Level())
}

func TestWatchStdin(t *testing.T) {
	calls := 0
	watchStdin(strings.NewReader("hello\n  q  \nq\n"), func() { calls++ })
	require.Equal(t, 1, calls)

	calls = 0
	watchStdin(strings.NewReader("quit\n"), func() { calls++ })
	require.Zero(t, calls)
}

func TestRunSuccess(t *testing.T) {
	cfg := stubAll(t)
	cfg.DatabaseURL = "db"
	cfg.RedisAddr = "127"
	cfg.RedisPassword = "pw"
	cfg.RedisDB = 1

	var events []string
	runMigrationsFn = func(url string) error {
		require.Equal(t, "db", url)
		events = append(events, "migrate")
		return nil
	}
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		events = append(events, "pgx")
		return &database.FakeDB{CloseFn: func() { events = append(events, "dbClose") }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		events = append(events, "redis")
		return &cache.FakeCache{CloseFn: func() error { events = append(events, "redisClose"); return nil }}, nil
	}
	var pool *worker.ThreadPool
	newWorkerPool = func(size int, opts ...worker.Option) (*worker.ThreadPool, error) {
		p, err := worker.New(size, opts...)
		pool = p
		return p, err
	}
	startServer = func(e *echo.Echo, addr string) error {
		require.Equal(t, cfg.Addr, addr)
		events = append(events, "start")
		return nil
	}

	require.NoError(t, run(nil))
	require.Equal(t, []string{"migrate", "pgx", "redis", "start", "redisClose", "dbClose"}, events)
	require.NotNil(t, pool)
	require.Equal(t, 2, pool.Size())
	require.Zero(t, pool.Alive())
	require.ErrorIs(t, pool.Execute(func() {}), worker.ErrPoolClosed)
}

func TestRunWithoutOptionalServices(t *testing.T) {
	stubAll(t)
	newPgxPool = func(context.Context, string) (database.DB, error) {
		t.Fatal("database should not be used")
		return nil, nil
	}
	newRedisClient = func(string, string, int) (cache.Cache, error) {
		t.Fatal("redis should not be used")
		return nil, nil
	}
	require.NoError(t, run(nil))
}

func TestRunStdinShutdown(t *testing.T) {
	stubAll(t)
	called := blockingServer(t)
	stdin = strings.NewReader("hello\nq\n")

	require.NoError(t, run(nil))
	require.True(t, *called)
}

func TestRunErrors(t *testing.T) {
	cfg := stubAll(t)

	loadConfig = func(string) (*config.Config, error) { return nil, errors.New("cfg") }
	require.Error(t, run(nil))
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }

	cfg.DatabaseURL = "db"
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(nil), "Migration")
	runMigrationsFn = func(string) error { return nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(nil), "DB")
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	cfg.RedisAddr = "addr"
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(nil), "Redis")
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	cfg.Workers = 0
	require.ErrorIs(t, run(nil), worker.ErrZeroSize)
	cfg.Workers = 2

	startServer = func(*echo.Echo, string) error { return errors.New("bind") }
	require.ErrorContains(t, run(nil), "bind")

	startServer = func(*echo.Echo, string) error { return http.ErrServerClosed }
	require.NoError(t, run(nil))
}

func TestRunShutdownError(t *testing.T) {
	stubAll(t)
	stopped := make(chan struct{})
	t.Cleanup(func() { close(stopped) })
	startServer = func(*echo.Echo, string) error {
		<-stopped
		return http.ErrServerClosed
	}
	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("timeout") }
	stdin = strings.NewReader("q\n")

	require.ErrorContains(t, run(nil), "timeout")
}

func TestParseFlags(t *testing.T) {
	t.Setenv("CONFIG_FILE", "from-env.yaml")
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, "from-env.yaml", opts.ConfigPath)
	require.False(t, opts.MigrateDown)

	opts, err = parseFlags([]string{"-config", "cli.yaml", "-migrate-down"})
	require.NoError(t, err)
	require.Equal(t, "cli.yaml", opts.ConfigPath)
	require.True(t, opts.MigrateDown)

	_, err = parseFlags([]string{"-bogus"})
	require.Error(t, err)
}

func TestRunMigrateDown(t *testing.T) {
	cfg := stubAll(t)
	var gotPath string
	loadConfig = func(path string) (*config.Config, error) {
		gotPath = path
		return cfg, nil
	}
	startServer = func(*echo.Echo, string) error {
		t.Fatal("server should not start")
		return nil
	}

	require.ErrorIs(t, run([]string{"-migrate-down"}), errNoDatabase)

	cfg.DatabaseURL = "db"
	var rolledBack string
	rollbackAllFn = func(url string) error { rolledBack = url; return nil }
	require.NoError(t, run([]string{"-config", "c.yaml", "-migrate-down"}))
	require.Equal(t, "db", rolledBack)
	require.Equal(t, "c.yaml", gotPath)

	rollbackAllFn = func(string) error { return errors.New("down") }
	require.ErrorContains(t, run([]string{"-migrate-down"}), "down")

	require.Error(t, run([]string{"-bogus"}))
}

func TestMainFunction(t *testing.T) {
	stubAll(t)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Zero(t, exitCode)
}

func TestMainExit(t *testing.T) {
	stubAll(t)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func(string) (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
