package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Option 設定 ThreadPool
type Option func(*ThreadPool)

// WithLogger 指定 pool 使用的 logger
func WithLogger(l *log.Logger) Option {
	return func(p *ThreadPool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics 指定 pool 回報的 Prometheus 指標
func WithMetrics(m *Metrics) Option {
	return func(p *ThreadPool) {
		p.metrics = m
	}
}

// ThreadPool 持有固定數量的 worker 與佇列的送出端。
// worker 數量在建立時決定，之後不再改變。
type ThreadPool struct {
	workers []*worker
	queue   *queue

	mu     sync.RWMutex
	closed bool

	alive   atomic.Int32
	logger  *log.Logger
	metrics *Metrics
}

type worker struct {
	id int
	// done 是 worker 的 join handle，Close 時取出一次後清空
	done chan struct{}
}

// take 取出 join handle，第二次呼叫回傳 nil
func (w *worker) take() chan struct{} {
	done := w.done
	w.done = nil
	return done
}

// New 建立含 size 個 worker 的 pool。size < 1 時回傳 ErrZeroSize，且不啟動任何 goroutine。
func New(size int, opts ...Option) (*ThreadPool, error) {
	if size < 1 {
		return nil, ErrZeroSize
	}

	p := &ThreadPool{
		queue:  newQueue(),
		logger: log.New("worker"),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.workers = make([]*worker, 0, size)
	for id := 0; id < size; id++ {
		p.workers = append(p.workers, p.spawn(id))
	}
	return p, nil
}

func (p *ThreadPool) spawn(id int) *worker {
	w := &worker{id: id, done: make(chan struct{})}
	p.alive.Add(1)
	p.metrics.workerStarted()
	go p.loop(w.id, w.done)
	return w
}

// loop 是 worker 的主迴圈：取訊息、執行任務，直到收到終止訊號
func (p *ThreadPool) loop(id int, done chan<- struct{}) {
	defer close(done)
	defer func() {
		p.alive.Add(-1)
		p.metrics.workerExited()
	}()

	for {
		msg := p.queue.receive()
		if msg.kind == messageTerminate {
			p.logger.Infof("Worker %d was told to terminate.", id)
			return
		}

		p.logger.Infof("Worker %d got a job; executing.", id)
		if panicked := p.run(id, msg.task); panicked {
			return
		}
	}
}

// run 同步執行任務。任務 panic 時 worker 隨之結束，不會重新啟動。
func (p *ThreadPool) run(id int, t Task) (panicked bool) {
	start := time.Now()
	p.metrics.taskStarted(p.queue.pending())
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			p.logger.Errorf("Worker %d task panicked, worker exiting: %v", id, r)
		}
		p.metrics.taskFinished(start, panicked)
	}()
	t()
	return false
}

// Execute 將任務放入佇列後立即返回，不等待任務完成。
// pool 關閉後呼叫會回傳 ErrPoolClosed；沒有存活的 worker 時回傳 ErrNoWorkers。
func (p *ThreadPool) Execute(t Task) error {
	if t == nil {
		return ErrNilTask
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.taskRejected()
		return ErrPoolClosed
	}
	if p.alive.Load() == 0 {
		p.metrics.taskRejected()
		p.logger.Error("Execute called with no live workers")
		return ErrNoWorkers
	}
	p.queue.send(taskMessage(t))
	p.metrics.taskSubmitted(p.queue.pending())
	return nil
}

// Close 對每個 worker 送出一個終止訊號，再依 id 順序等待全部結束。
// 在 Close 開始前被接受的任務都會在 Close 返回前執行完畢。
// 重複呼叫回傳 ErrPoolClosed。不可在 pool 的任務內呼叫。
func (p *ThreadPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	p.mu.Unlock()

	p.logger.Info("Sending terminate message to all workers.")
	for range p.workers {
		p.queue.send(terminateMessage())
	}

	p.logger.Info("Shutting down all workers.")
	for _, w := range p.workers {
		p.logger.Infof("Shutting down worker %d", w.id)
		if done := w.take(); done != nil {
			<-done
		}
	}
	return nil
}

// Size 回傳建立時的 worker 數量
func (p *ThreadPool) Size() int {
	return len(p.workers)
}

// Alive 回傳尚未結束的 worker 數量
func (p *ThreadPool) Alive() int {
	return int(p.alive.Load())
}
