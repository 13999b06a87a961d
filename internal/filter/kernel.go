package filter

import (
	"math"
	"sync"
)

// ConeCenterValue is the weight of the center cell of a cone kernel.
const ConeCenterValue = 100

// ConeKernel generates the square integer cone kernel for the given radius.
// The kernel is (2*radius+1) cells wide, stored row-major.
//
// Each cell weighs ConeCenterValue minus its rounded Euclidean distance
// from the center, where one cell step measures ConeCenterValue/(radius+2).
// Weights are not normalized; corner weights go negative from radius 6 on.
//
// For radius <= 0, returns the single-cell kernel [100].
func ConeKernel(radius int) []int32 {
	if radius < 0 {
		radius = 0
	}

	size := radius*2 + 1
	cellLength := ConeCenterValue / (radius + 2)
	kernel := make([]int32, size*size)

	for row := 0; row < size; row++ {
		dy := float64(absInt(radius-row) * cellLength)
		for col := 0; col < size; col++ {
			dx := float64(absInt(radius-col) * cellLength)
			distance := int32(math.Round(math.Sqrt(dx*dx + dy*dy)))
			kernel[row*size+col] = ConeCenterValue - distance
		}
	}

	return kernel
}

// BoxKernel generates a (2*radius+1) square kernel of ones.
//
// Box blur is the plain neighborhood mean.
func BoxKernel(radius int) []int32 {
	if radius < 0 {
		radius = 0
	}

	size := radius*2 + 1
	kernel := make([]int32, size*size)
	for i := range kernel {
		kernel[i] = 1
	}

	return kernel
}

// BinomialKernel returns the 3x3 binomial kernel
//
//	1 2 1
//	2 4 2
//	1 2 1
func BinomialKernel() []int32 {
	return []int32{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	}
}

// KernelSum returns the sum of all weights.
func KernelSum(weights []int32) int64 {
	var sum int64
	for _, w := range weights {
		sum += int64(w)
	}
	return sum
}

// kernelCache caches computed cone kernels to avoid recomputation.
// Key is the radius, value is the kernel.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]int32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

// newKernelCache creates a kernel cache with the given maximum entries.
func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]int32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
// The returned slice is shared and must not be modified.
func (c *kernelCache) get(radius int) []int32 {
	c.mu.RLock()
	if kernel, ok := c.cache[radius]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := ConeKernel(radius)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Simple eviction: clear half the cache
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[radius] = kernel
	c.mu.Unlock()

	return kernel
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedConeKernel returns a cone kernel for the radius from a process-wide
// cache. The result is a fresh copy the caller may modify.
func CachedConeKernel(radius int) []int32 {
	if radius < 0 {
		radius = 0
	}
	shared := defaultKernelCache.get(radius)
	out := make([]int32, len(shared))
	copy(out, shared)
	return out
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
