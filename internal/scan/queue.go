package scan

import "sync"

// workQueue is an unbounded FIFO of pending filesystem entries shared by the
// walking producer and the worker pool. It is a pure synchronization
// primitive: it performs no I/O and cannot fail.
//
// Push never blocks; Pop blocks until an entry is available or the queue has
// been closed and drained. Close wakes every blocked consumer so none can
// miss the shutdown signal.
type workQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	head   int
	closed bool
}

func newWorkQueue() *workQueue {
	q := &workQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an entry and wakes one blocked consumer. Pushing after Close
// is a programming error; the entry is dropped and a diagnostic is logged.
func (q *workQueue) Push(path string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		logError("Push after close dropped: %s", path)
		return
	}
	q.items = append(q.items, path)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop removes and returns the oldest entry. It blocks while the queue is
// empty and open. The second return value is false once the queue is closed
// and drained, which is the signal for a worker to terminate.
func (q *workQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) && !q.closed {
		q.cond.Wait()
	}

	if q.head == len(q.items) {
		return "", false
	}

	path := q.items[q.head]
	q.items[q.head] = "" // release for GC
	q.head++

	// Reclaim the drained prefix once it dominates the backing array.
	if q.head > 1024 && q.head*2 >= len(q.items) {
		q.items = append([]string(nil), q.items[q.head:]...)
		q.head = 0
	}

	return path, true
}

// Close marks the queue closed and wakes all blocked consumers. Idempotent.
func (q *workQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len reports the number of undelivered entries.
func (q *workQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
