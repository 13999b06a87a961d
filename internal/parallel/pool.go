package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: pool closed")

// Task is a unit of work executed by the pool. The context is cancelled as
// soon as any sibling task in the same ExecuteAll call fails.
type Task func(ctx context.Context) error

// TaskError reports which task of an ExecuteAll batch failed.
type TaskError struct {
	// Index is the position of the failed task in the submitted slice.
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("parallel: task %d: %v", e.Index, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// PanicError carries a panic recovered inside a task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// WorkerPool is a fixed set of goroutines executing row-range tasks.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, which evens out partitions that finish at different speeds.
//
// Thread safety: WorkerPool is safe for concurrent use. Several ExecuteAll
// calls may share the pool at the same time.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// closeMu orders Close against in-flight submissions.
	closeMu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task on the pool and waits for all of them.
//
// Execution is fail-fast: the first task that returns an error or panics
// cancels the context seen by the remaining tasks, and that first error is
// returned wrapped in a *TaskError. Tasks that have not started when the
// batch is cancelled are skipped. If ctx is cancelled before every task
// completed, ctx.Err() is returned instead.
func (p *WorkerPool) ExecuteAll(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if !p.running.Load() {
		return ErrPoolClosed
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		completion sync.WaitGroup
		once       sync.Once
		firstErr   error
		skipped    atomic.Int64
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	completion.Add(len(tasks))
	for i, task := range tasks {
		wrapped := func() {
			defer completion.Done()
			if batchCtx.Err() != nil {
				skipped.Add(1)
				return
			}
			if err := runTask(batchCtx, task); err != nil {
				fail(&TaskError{Index: i, Err: err})
			}
		}

		// Submit to the worker's queue; blocks while the queue is full.
		p.workQueues[i%p.workers] <- wrapped
	}

	completion.Wait()

	if err := ctx.Err(); err != nil && (skipped.Load() > 0 || errors.Is(firstErr, err)) {
		return err
	}
	return firstErr
}

// runTask executes task, converting a panic into a *PanicError.
func runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task(ctx)
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for in-flight batches and queued work
// to complete, and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.closeMu.Unlock()
		return
	}
	close(p.done)
	p.closeMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
