package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config 是服務的執行設定
type Config struct {
	Addr            string        `validate:"required"`
	Workers         int           `validate:"min=1"`
	PublicDir       string        `validate:"required"`
	SleepDelay      time.Duration `validate:"min=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=debug info warn error off"`

	// 以下為選用功能，留空即停用
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int           `validate:"min=0"`
	CacheTTL          time.Duration `validate:"min=0"`
	JWTSecret         string        `validate:"required_with=AdminPasswordHash"`
	AdminPasswordHash string        `validate:"required_with=JWTSecret"`
}

// fileConfig 設定檔結構，時間欄位以字串表示（如 "5s"）
type fileConfig struct {
	Addr            string `yaml:"addr"`
	Workers         int    `yaml:"workers"`
	PublicDir       string `yaml:"public_dir"`
	SleepDelay      string `yaml:"sleep_delay"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	LogLevel        string `yaml:"log_level"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`

	Admin struct {
		JWTSecret    string `yaml:"jwt_secret"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"admin"`
}

// Default 回傳預設設定
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:7878",
		Workers:         4,
		PublicDir:       "public",
		SleepDelay:      5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		CacheTTL:        time.Minute,
	}
}

var validate = validator.New()

// Load 依序套用預設值、設定檔（path 為空則略過）與環境變數，最後驗證
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.Workers != 0 {
		cfg.Workers = fc.Workers
	}
	if fc.PublicDir != "" {
		cfg.PublicDir = fc.PublicDir
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if err := parseDuration(fc.SleepDelay, "sleep_delay", &cfg.SleepDelay); err != nil {
		return err
	}
	if err := parseDuration(fc.ShutdownTimeout, "shutdown_timeout", &cfg.ShutdownTimeout); err != nil {
		return err
	}

	cfg.DatabaseURL = fc.Database.URL
	cfg.RedisAddr = fc.Redis.Addr
	cfg.RedisPassword = fc.Redis.Password
	cfg.RedisDB = fc.Redis.DB
	if err := parseDuration(fc.Redis.TTL, "redis.ttl", &cfg.CacheTTL); err != nil {
		return err
	}
	cfg.JWTSecret = fc.Admin.JWTSecret
	cfg.AdminPasswordHash = fc.Admin.PasswordHash
	return nil
}

func applyEnv(cfg *Config) error {
	setString("HTTP_ADDR", &cfg.Addr)
	setString("PUBLIC_DIR", &cfg.PublicDir)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("REDIS_PASSWORD", &cfg.RedisPassword)
	setString("JWT_SECRET", &cfg.JWTSecret)
	setString("ADMIN_PASSWORD_HASH", &cfg.AdminPasswordHash)

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("無效的 WORKER_COUNT: %v", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("無效的 REDIS_DB: %v", err)
		}
		cfg.RedisDB = n
	}
	if err := parseDuration(os.Getenv("SLEEP_DELAY"), "SLEEP_DELAY", &cfg.SleepDelay); err != nil {
		return err
	}
	if err := parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), "SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout); err != nil {
		return err
	}
	return parseDuration(os.Getenv("CACHE_TTL"), "CACHE_TTL", &cfg.CacheTTL)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseDuration(v, name string, dst *time.Duration) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = d
	return nil
}
