package worker

import "errors"

var (
	// ErrZeroSize 表示以少於 1 的 worker 數量建立 pool
	ErrZeroSize = errors.New("worker pool size must be at least 1")

	// ErrPoolClosed 表示 pool 已開始或完成關閉
	ErrPoolClosed = errors.New("worker pool closed")

	// ErrNoWorkers 表示所有 worker 都已因任務 panic 而結束，任務不會再被執行
	ErrNoWorkers = errors.New("worker pool has no live workers")

	// ErrNilTask 表示送入 nil 任務
	ErrNilTask = errors.New("task cannot be nil")
)
