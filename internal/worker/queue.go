package worker

import "sync"

type messageKind int

const (
	messageTask messageKind = iota
	messageTerminate
)

// message 是佇列上傳遞的單位：任務或終止訊號
type message struct {
	kind messageKind
	task Task
}

func taskMessage(t Task) message {
	return message{kind: messageTask, task: t}
}

func terminateMessage() message {
	return message{kind: messageTerminate}
}

// queue 為無界、多生產者多消費者的 FIFO 佇列。
// receive 在鎖內取出下一個項目；等待時透過 cond 釋放鎖。
// 佇列沒有 close，因此不存在「沒有 sender 卻在等待」的狀態。
type queue struct {
	mu    sync.Mutex
	ready *sync.Cond
	items []message
	// tasks 為 items 中任務訊息的數量，不含終止訊號
	tasks int
}

func newQueue() *queue {
	q := &queue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// send 放入一個項目並喚醒一個等待中的 receiver
func (q *queue) send(m message) {
	q.mu.Lock()
	q.items = append(q.items, m)
	if m.kind == messageTask {
		q.tasks++
	}
	q.mu.Unlock()
	q.ready.Signal()
}

// receive 阻塞直到有項目可取，並將其移出佇列
func (q *queue) receive() message {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.ready.Wait()
	}
	m := q.items[0]
	q.items[0] = message{}
	q.items = q.items[1:]
	if m.kind == messageTask {
		q.tasks--
	}
	return m
}

// pending 回傳等待中的任務數，不含終止訊號
func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks
}
