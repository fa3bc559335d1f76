package hexmap

import (
	"context"
	"sync"
)

// Scheduler runs tasks one at a time on a single logical thread.
//
// Render passes do one batch per task and schedule the next batch as a new
// task, so other work queued in between (input handling, a newer pass) gets
// a turn.
type Scheduler interface {
	Schedule(task func())
}

// Loop is a FIFO Scheduler driven by its owner.
//
// Schedule may be called from any goroutine. Tasks only run inside Tick,
// Drain or Run, on the goroutine that calls them.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	turns int
	wake  chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Schedule queues a task for a later turn.
func (l *Loop) Schedule(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Tick runs the oldest queued task. It returns false if the queue was
// empty.
func (l *Loop) Tick() bool {
	l.mu.Lock()
	if len(l.tasks) == 0 {
		l.mu.Unlock()
		return false
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	l.turns++
	l.mu.Unlock()

	task()
	return true
}

// Drain runs tasks until the queue is empty, including tasks scheduled by
// the tasks it runs, and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for l.Tick() {
		n++
	}
	return n
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Turns returns the number of tasks run so far.
func (l *Loop) Turns() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.turns
}

// Run executes tasks as they arrive until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Tick() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
