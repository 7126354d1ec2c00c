package store

import (
	"context"
	"fmt"

	"hello-web/internal/database"
	"hello-web/internal/model"
)

// InsertAccessLog 寫入一筆請求紀錄
func InsertAccessLog(ctx context.Context, db database.DB, l model.AccessLog) error {
	_, err := db.Exec(ctx,
		`INSERT INTO access_logs (request_id, method, path, status, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.RequestID,
		l.Method,
		l.Path,
		l.Status,
		l.Duration.Milliseconds(),
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("InsertAccessLog: %w", err)
	}
	return nil
}

// ListPathHits 依請求次數由多到少列出各路徑統計，limit <= 0 表示不限制
func ListPathHits(ctx context.Context, db database.DB, limit int) ([]model.PathHits, error) {
	query := `SELECT path, COUNT(*) AS hits, MAX(created_at) AS last_seen
		 FROM access_logs
		 GROUP BY path
		 ORDER BY hits DESC, path`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPathHits: %w", err)
	}
	defer rows.Close()

	var out []model.PathHits
	for rows.Next() {
		var h model.PathHits
		if err := rows.Scan(&h.Path, &h.Hits, &h.LastSeen); err != nil {
			return nil, fmt.Errorf("ListPathHits scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPathHits: %w", err)
	}
	return out, nil
}
