// Package site 對應請求到靜態頁面並讀取其內容
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"hello-web/internal/cache"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// 靜態目錄中的頁面檔名
const (
	// IndexPage 是 / 與 /sleep 回應的頁面
	IndexPage = "hello.html"
	// NotFoundPage 是其餘請求回應的 404 頁面
	NotFoundPage = "404.html"
	// FaviconPage 是 /favicon.ico 回應的圖示
	FaviconPage = "favicon.svg"
)

// MIMEImageSVG 是 favicon 的 Content-Type
const MIMEImageSVG = "image/svg+xml"

// Page 描述一個請求要回應的頁面
type Page struct {
	Status      int
	File        string
	ContentType string
	// Slow 為 true 時回應前先等待設定的延遲
	Slow bool
}

// Resolve 依 method 與 path 找出要回應的頁面，其餘一律回 404
func Resolve(method, path string) Page {
	if method == http.MethodGet {
		switch path {
		case "/":
			return Page{Status: http.StatusOK, File: IndexPage, ContentType: echo.MIMETextHTMLCharsetUTF8}
		case "/sleep":
			return Page{Status: http.StatusOK, File: IndexPage, ContentType: echo.MIMETextHTMLCharsetUTF8, Slow: true}
		case "/favicon.ico":
			return Page{Status: http.StatusOK, File: FaviconPage, ContentType: MIMEImageSVG}
		}
	}
	return Page{Status: http.StatusNotFound, File: NotFoundPage, ContentType: echo.MIMETextHTMLCharsetUTF8}
}

// Loader 從目錄讀取頁面，設定 cache 時先查 Redis
type Loader struct {
	dir    string
	cache  cache.Cache
	ttl    time.Duration
	logger echo.Logger
}

// NewLoader 建立 Loader；c 可為 nil 表示不使用快取
func NewLoader(dir string, c cache.Cache, ttl time.Duration, logger echo.Logger) *Loader {
	if logger == nil {
		logger = log.New("site")
	}
	return &Loader{dir: dir, cache: c, ttl: ttl, logger: logger}
}

func cacheKey(name string) string {
	return "page:" + name
}

// Load 回傳頁面內容。快取失敗只記錄警告，改由磁碟讀取。
func (l *Loader) Load(ctx context.Context, name string) ([]byte, error) {
	if l.cache != nil {
		data, err := l.cache.Get(ctx, cacheKey(name)).Bytes()
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, redis.Nil) {
			l.logger.Warnf("page cache get %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(l.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", name, err)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, cacheKey(name), data, l.ttl).Err(); err != nil {
			l.logger.Warnf("page cache set %s: %v", name, err)
		}
	}
	return data, nil
}

// Purge 清除所有已知頁面的快取
func (l *Loader) Purge(ctx context.Context) (int64, error) {
	if l.cache == nil {
		return 0, nil
	}
	return l.cache.Del(ctx, cacheKey(IndexPage), cacheKey(NotFoundPage), cacheKey(FaviconPage)).Result()
}
