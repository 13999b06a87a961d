package blur

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gogpu/blur/internal/filter"
	"github.com/gogpu/blur/internal/parallel"
)

// Orchestrator owns a fixed-size worker pool and runs convolutions on it.
//
// The pool is started by New, reused by every Run and stopped by Close.
// Run may be called concurrently from several goroutines.
type Orchestrator struct {
	pool    *parallel.WorkerPool
	buffers *bufferPool
	opts    options

	runs     atomic.Uint64
	failures atomic.Uint64
	rows     atomic.Uint64
}

// Stats are cumulative counters of an Orchestrator.
type Stats struct {
	// Runs is the number of successful single-pass convolutions.
	Runs uint64

	// Failures counts runs that returned an error after validation.
	Failures uint64

	// Rows is the total number of output rows computed by successful runs.
	Rows uint64
}

// New creates an Orchestrator and starts its worker pool.
func New(opts ...Option) *Orchestrator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	orch := &Orchestrator{
		pool:    parallel.NewWorkerPool(o.workers),
		buffers: newBufferPool(2),
		opts:    o,
	}
	orch.logger().Debug("blur: worker pool started",
		"workers", orch.pool.Workers(),
		"partition", o.partition.String())

	return orch
}

// Workers returns the pool size.
func (o *Orchestrator) Workers() int {
	return o.pool.Workers()
}

// Stats returns a snapshot of the cumulative counters.
func (o *Orchestrator) Stats() Stats {
	return Stats{
		Runs:     o.runs.Load(),
		Failures: o.failures.Load(),
		Rows:     o.rows.Load(),
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.opts.logger != nil {
		return o.opts.logger
	}
	return Logger()
}

func (o *Orchestrator) plan(rows int) []parallel.RowRange {
	if o.opts.partition == PartitionBalanced {
		return parallel.PlanBalanced(rows, o.pool.Workers())
	}
	return parallel.Plan(rows, o.pool.Workers())
}

// Run convolves input with kernel and returns a new buffer of the same size.
//
// The kernel and input are validated before anything is allocated; problems
// are reported as *ConfigurationError. Output rows are then split into one
// range per worker and Run blocks until every range is done. If any range
// fails, the error is a *WorkerFailure; if ctx is cancelled, ctx.Err() is
// returned. In both cases the partially written output is discarded and the
// returned buffer is nil.
func (o *Orchestrator) Run(ctx context.Context, input *PixelBuffer, kernel Kernel) (*PixelBuffer, error) {
	if !o.pool.IsRunning() {
		return nil, ErrClosed
	}
	if err := validateInput(input, kernel); err != nil {
		return nil, err
	}

	out := NewPixelBuffer(input.Width, input.Height)
	if err := o.run(ctx, input, kernel, out); err != nil {
		return nil, err
	}
	return out, nil
}

// run convolves input into out, which must be zero-filled and of the same
// size. Inputs are already validated.
func (o *Orchestrator) run(ctx context.Context, input *PixelBuffer, kernel Kernel, out *PixelBuffer) error {
	start := time.Now()

	conv, err := filter.NewConvolver(input.Pix, out.Pix, input.Width, input.Height, kernel.Weights, kernel.Width)
	if err != nil {
		return &ConfigurationError{Reason: "convolver setup", Err: err}
	}

	ranges := o.plan(conv.OutputRows())
	tasks := make([]parallel.Task, len(ranges))
	for i, r := range ranges {
		tasks[i] = o.rangeTask(conv, r)
	}

	if err := o.pool.ExecuteAll(ctx, tasks); err != nil {
		o.failures.Add(1)
		err = o.translate(err, ranges)
		o.logger().Warn("blur: convolution failed",
			"width", input.Width,
			"height", input.Height,
			"err", err)
		return err
	}

	o.runs.Add(1)
	o.rows.Add(uint64(conv.OutputRows()))
	o.logger().Debug("blur: convolution done",
		"width", input.Width,
		"height", input.Height,
		"kernel", fmt.Sprintf("%dx%d", kernel.Width, kernel.Height()),
		"ranges", len(ranges),
		"elapsed", time.Since(start))

	return nil
}

func (o *Orchestrator) rangeTask(conv *filter.Convolver, r parallel.RowRange) parallel.Task {
	return func(ctx context.Context) error {
		if o.opts.beforeTask != nil {
			if err := o.opts.beforeTask(r.Start, r.End); err != nil {
				return err
			}
		}
		return conv.RowsContext(ctx, r.Start, r.End)
	}
}

// translate maps pool errors onto the package error taxonomy.
func (o *Orchestrator) translate(err error, ranges []parallel.RowRange) error {
	if errors.Is(err, parallel.ErrPoolClosed) {
		return ErrClosed
	}

	var te *parallel.TaskError
	if errors.As(err, &te) && te.Index >= 0 && te.Index < len(ranges) {
		if errors.Is(te.Err, context.Canceled) || errors.Is(te.Err, context.DeadlineExceeded) {
			return te.Err
		}
		r := ranges[te.Index]
		return &WorkerFailure{Start: r.Start, End: r.End, Err: te.Err}
	}

	return err
}

// RunPasses applies the kernel passes times, feeding each result into the
// next pass. Intermediate buffers are recycled and never returned; on
// failure no buffer is returned.
func (o *Orchestrator) RunPasses(ctx context.Context, input *PixelBuffer, kernel Kernel, passes int) (*PixelBuffer, error) {
	if passes < 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%d passes", passes)}
	}
	if !o.pool.IsRunning() {
		return nil, ErrClosed
	}
	if err := validateInput(input, kernel); err != nil {
		return nil, err
	}

	cur := input
	for i := 0; i < passes; i++ {
		next := o.buffers.get(input.Width, input.Height)
		err := o.run(ctx, cur, kernel, next)
		if cur != input {
			o.buffers.put(cur)
		}
		if err != nil {
			o.buffers.put(next)
			return nil, fmt.Errorf("pass %d of %d: %w", i+1, passes, err)
		}
		cur = next
	}

	return cur, nil
}

// Close stops the worker pool after in-flight runs complete.
// Close is safe to call multiple times.
func (o *Orchestrator) Close() {
	if !o.pool.IsRunning() {
		return
	}
	o.pool.Close()
	o.logger().Debug("blur: worker pool stopped", "workers", o.pool.Workers())
}

func validateInput(input *PixelBuffer, kernel Kernel) error {
	if err := input.validate(); err != nil {
		return &ConfigurationError{Reason: "input buffer", Err: err}
	}
	return kernel.Validate()
}

// Convolve runs a single convolution on a temporary pool of workers
// goroutines. Validation happens before the pool is created.
func Convolve(input *PixelBuffer, kernel Kernel, workers int) (*PixelBuffer, error) {
	return ConvolveContext(context.Background(), input, kernel, workers)
}

// ConvolveContext is Convolve with a context for cancellation.
func ConvolveContext(ctx context.Context, input *PixelBuffer, kernel Kernel, workers int) (*PixelBuffer, error) {
	if err := validateInput(input, kernel); err != nil {
		return nil, err
	}

	o := New(WithWorkers(workers))
	defer o.Close()

	return o.Run(ctx, input, kernel)
}
