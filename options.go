package blur

import (
	"fmt"
	"log/slog"
)

// Option configures an Orchestrator during creation.
//
// Example:
//
//	o := blur.New(
//	    blur.WithWorkers(8),
//	    blur.WithPartition(blur.PartitionBalanced),
//	)
type Option func(*options)

// options holds optional configuration for Orchestrator creation.
type options struct {
	workers   int
	logger    *slog.Logger
	partition Partition

	// beforeTask, if set, runs at the start of every row-range task.
	// Only tests set it, to inject worker faults; there is no public Option.
	beforeTask func(start, end int) error
}

// defaultOptions returns the default orchestrator options.
func defaultOptions() options {
	return options{
		workers:   0, // GOMAXPROCS
		partition: PartitionLastAbsorbs,
	}
}

// WithWorkers sets the pool size, which is also the number of row ranges
// each run is split into. Zero or a negative value selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets a logger for this Orchestrator instead of the
// package-wide logger from SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPartition selects how output rows are split across workers.
func WithPartition(p Partition) Option {
	return func(o *options) {
		o.partition = p
	}
}

// Partition selects a row partitioning strategy. All strategies cover every
// output row exactly once and produce identical pixels.
type Partition int

const (
	// PartitionLastAbsorbs gives every range rows/workers rows and the
	// remainder to the last range.
	PartitionLastAbsorbs Partition = iota

	// PartitionBalanced spreads the remainder over the leading ranges so
	// sizes differ by at most one row.
	PartitionBalanced
)

// String returns the flag spelling of the strategy.
func (p Partition) String() string {
	switch p {
	case PartitionLastAbsorbs:
		return "last"
	case PartitionBalanced:
		return "balanced"
	default:
		return fmt.Sprintf("Partition(%d)", int(p))
	}
}

// ParsePartition parses "last" or "balanced".
func ParsePartition(s string) (Partition, error) {
	switch s {
	case "last", "":
		return PartitionLastAbsorbs, nil
	case "balanced":
		return PartitionBalanced, nil
	default:
		return 0, fmt.Errorf("blur: unknown partition strategy %q", s)
	}
}
