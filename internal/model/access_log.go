// File: internal/model/access_log.go
package model

import "time"

// AccessLog 是一筆站台請求紀錄
type AccessLog struct {
	ID        int64         `db:"id" json:"id"`
	RequestID string        `db:"request_id" json:"request_id"`
	Method    string        `db:"method" json:"method"`
	Path      string        `db:"path" json:"path"`
	Status    int           `db:"status" json:"status"`
	Duration  time.Duration `db:"duration_ms" json:"duration"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// PathHits 是單一路徑的請求統計
type PathHits struct {
	Path     string    `db:"path" json:"path"`
	Hits     int64     `db:"hits" json:"hits"`
	LastSeen time.Time `db:"last_seen" json:"last_seen"`
}
