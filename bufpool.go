package blur

import "sync"

// bufferPool recycles PixelBuffers of identical dimensions.
//
// It backs the intermediate results of multi-pass runs; buffers handed to
// callers are never returned to the pool.
//
// Thread safety: All methods are safe for concurrent use.
type bufferPool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*PixelBuffer
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identically sized buffers.
type poolKey struct {
	width  int
	height int
}

// newBufferPool creates a pool retaining at most maxPerBucket buffers of
// each size. Zero means unlimited.
func newBufferPool(maxPerBucket int) *bufferPool {
	return &bufferPool{
		buckets: make(map[poolKey][]*PixelBuffer),
		maxSize: maxPerBucket,
	}
}

// get returns a zero-filled buffer of the given size, reusing a pooled one
// when available.
func (p *bufferPool) get(width, height int) *PixelBuffer {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Fill(0)
		return buf
	}
	p.mu.Unlock()

	return NewPixelBuffer(width, height)
}

// put returns buf to the pool. Nil buffers and buffers beyond the bucket
// capacity are dropped.
func (p *bufferPool) put(buf *PixelBuffer) {
	if buf == nil {
		return
	}

	key := poolKey{width: buf.Width, height: buf.Height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// size returns the number of pooled buffers across all buckets.
func (p *bufferPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
