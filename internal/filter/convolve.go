package filter

import (
	"context"
	"errors"

	"github.com/gogpu/blur/internal/color"
)

// Kernel validation errors.
var (
	// ErrEmptyKernel is returned when the kernel has no weights or a
	// non-positive width.
	ErrEmptyKernel = errors.New("filter: empty kernel")

	// ErrIncompleteRow is returned when the weight count is not a multiple
	// of the kernel width.
	ErrIncompleteRow = errors.New("filter: kernel contains an incomplete row")

	// ErrZeroSum is returned when the kernel weights sum to zero and cannot
	// be used as a divisor.
	ErrZeroSum = errors.New("filter: kernel weights sum to zero")

	// ErrBufferSize is returned when a pixel slice does not hold exactly
	// width*height pixels.
	ErrBufferSize = errors.New("filter: buffer size does not match dimensions")
)

// ValidateKernel checks that weights form complete rows of kernelWidth cells
// and have a non-zero sum.
func ValidateKernel(weights []int32, kernelWidth int) error {
	if kernelWidth <= 0 || len(weights) == 0 {
		return ErrEmptyKernel
	}
	if len(weights)%kernelWidth != 0 {
		return ErrIncompleteRow
	}
	if KernelSum(weights) == 0 {
		return ErrZeroSum
	}
	return nil
}

// Convolver applies one integer kernel to a packed 0xAARRGGBB pixel buffer.
//
// Only output pixels whose whole kernel window lies inside the source are
// computed. The value for window origin (x, y) is stored at
// (x + kernelWidth/2, y + kernelHeight/2); the border around that region is
// never written.
//
// Rows may be called concurrently for disjoint row ranges: src is only read
// and each output row is written by the call that owns it.
type Convolver struct {
	src, dst []uint32
	width    int
	height   int

	weights []int32
	kw, kh  int
	sum     int64
}

// NewConvolver validates the kernel and buffers and returns a Convolver
// reading src and writing dst. Both buffers hold width*height pixels.
func NewConvolver(src, dst []uint32, width, height int, weights []int32, kernelWidth int) (*Convolver, error) {
	if err := ValidateKernel(weights, kernelWidth); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 || len(src) != width*height || len(dst) != width*height {
		return nil, ErrBufferSize
	}

	return &Convolver{
		src:     src,
		dst:     dst,
		width:   width,
		height:  height,
		weights: weights,
		kw:      kernelWidth,
		kh:      len(weights) / kernelWidth,
		sum:     KernelSum(weights),
	}, nil
}

// OutputRows returns the number of window origins along the vertical axis.
// This is the row count partitioned across workers.
func (c *Convolver) OutputRows() int {
	return max(c.height-c.kh+1, 0)
}

// OutputCols returns the number of window origins along the horizontal axis.
func (c *Convolver) OutputCols() int {
	return max(c.width-c.kw+1, 0)
}

// Sum returns the kernel divisor.
func (c *Convolver) Sum() int64 {
	return c.sum
}

// Rows computes the output rows whose window origins lie in [start, end).
// The range is clipped to [0, OutputRows()).
func (c *Convolver) Rows(start, end int) {
	start, end = c.clip(start, end)
	for y := start; y < end; y++ {
		c.row(y)
	}
}

// RowsContext is Rows with a cancellation check before every row.
// It returns ctx.Err() as soon as the context is done.
func (c *Convolver) RowsContext(ctx context.Context, start, end int) error {
	start, end = c.clip(start, end)
	for y := start; y < end; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.row(y)
	}
	return nil
}

func (c *Convolver) clip(start, end int) (int, int) {
	return max(start, 0), min(end, c.OutputRows())
}

// row computes a single output row for window origin row y.
//
// Channel sums use 64-bit signed accumulators and are divided by the kernel
// sum with Go's truncating integer division. That quantization is part of
// the output contract: results are reproducible bit for bit.
func (c *Convolver) row(y int) {
	cols := c.OutputCols()
	if cols == 0 {
		return
	}
	width := c.width
	kw, kh := c.kw, c.kh
	weights := c.weights
	sum := c.sum

	out := c.dst[(y+KernelCenter(kh))*width+KernelCenter(kw):]

	for x := 0; x < cols; x++ {
		var r, g, b int64

		pixelIndex := y*width + x
		for filterIndex := 0; filterIndex < len(weights); filterIndex += kw {
			window := c.src[pixelIndex : pixelIndex+kw]
			for fx, p := range window {
				factor := int64(weights[filterIndex+fx])
				pr, pg, pb := color.Unpack(p)
				r += int64(pr) * factor
				g += int64(pg) * factor
				b += int64(pb) * factor
			}
			pixelIndex += width
		}

		out[x] = color.Pack(
			color.ClampChannel(r/sum),
			color.ClampChannel(g/sum),
			color.ClampChannel(b/sum),
		)
	}
}
