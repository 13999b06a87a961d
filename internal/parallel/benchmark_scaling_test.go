package parallel

import (
	"context"
	"runtime"
	"strconv"
	"testing"

	"github.com/gogpu/blur/internal/filter"
)

// =============================================================================
// Core Scaling Benchmarks
// =============================================================================
//
// These benchmarks measure how row-partitioned convolution scales with the
// number of cores. GOMAXPROCS and the worker count are set together.
//
// Run with: go test -bench=BenchmarkScaling -benchmem -benchtime=1s ./internal/parallel/...
//
// =============================================================================

// setMaxProcs sets GOMAXPROCS and returns a cleanup function to restore it.
func setMaxProcs(n int) func() {
	old := runtime.GOMAXPROCS(n)
	return func() {
		runtime.GOMAXPROCS(old)
	}
}

func benchPixels(w, h int) []uint32 {
	pix := make([]uint32, w*h)
	for i := range pix {
		pix[i] = 0xFF000000 | uint32(i*2654435761)&0x00FFFFFF
	}
	return pix
}

func benchmarkConvolveScaling(b *testing.B, w, h, radius, cores int, plan func(int, int) []RowRange) {
	cleanup := setMaxProcs(cores)
	defer cleanup()

	src := benchPixels(w, h)
	dst := make([]uint32, len(src))
	conv, err := filter.NewConvolver(src, dst, w, h, filter.ConeKernel(radius), 2*radius+1)
	if err != nil {
		b.Fatal(err)
	}

	pool := NewWorkerPool(cores)
	defer pool.Close()

	ranges := plan(conv.OutputRows(), cores)
	tasks := make([]Task, len(ranges))
	for i, r := range ranges {
		tasks[i] = func(ctx context.Context) error {
			return conv.RowsContext(ctx, r.Start, r.End)
		}
	}

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := pool.ExecuteAll(ctx, tasks); err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// Cone Blur Scaling (HD)
// =============================================================================

func BenchmarkScaling_ConeHD(b *testing.B) {
	for _, cores := range []int{1, 2, 4, 8} {
		b.Run(strconv.Itoa(cores)+"Cores", func(b *testing.B) {
			benchmarkConvolveScaling(b, 1920, 1080, 2, cores, Plan)
		})
	}
}

func BenchmarkScaling_ConeHD_MaxCores(b *testing.B) {
	benchmarkConvolveScaling(b, 1920, 1080, 2, runtime.NumCPU(), Plan)
}

// =============================================================================
// Partition Strategy
// =============================================================================

// BenchmarkScaling_Partition compares the two planners on a height that
// leaves a large remainder for the last range.
func BenchmarkScaling_Partition(b *testing.B) {
	const cores = 8
	b.Run("LastAbsorbs", func(b *testing.B) {
		benchmarkConvolveScaling(b, 640, 127, 1, cores, Plan)
	})
	b.Run("Balanced", func(b *testing.B) {
		benchmarkConvolveScaling(b, 640, 127, 1, cores, PlanBalanced)
	})
}

// =============================================================================
// Scaling Efficiency
// =============================================================================

// BenchmarkScalingEfficiency_Cone reports speedup relative to one core.
func BenchmarkScalingEfficiency_Cone(b *testing.B) {
	coreCounts := []int{1, 2, 4, 8}
	maxCores := runtime.NumCPU()

	for _, cores := range coreCounts {
		if cores > maxCores {
			continue
		}
		b.Run(strconv.Itoa(cores)+"Cores", func(b *testing.B) {
			benchmarkConvolveScaling(b, 1280, 720, 3, cores, Plan)
		})
	}
}
