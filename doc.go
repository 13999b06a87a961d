// Package blur provides a parallel integer convolution engine for packed
// 32-bit pixel buffers.
//
// # Overview
//
// blur convolves a PixelBuffer with a square integer Kernel. The output rows
// are split into contiguous row ranges, one per task, and executed on a
// reusable worker pool owned by an Orchestrator. Every output row is written
// by exactly one task and the input is only read, so no locking is needed
// while the work runs.
//
// # Quick Start
//
//	import "github.com/gogpu/blur"
//
//	kernel, _ := blur.GenerateKernel(3)
//
//	o := blur.New(blur.WithWorkers(8))
//	defer o.Close()
//
//	out, err := o.Run(ctx, img, kernel)
//
// For a single call, Convolve creates and closes the pool itself:
//
//	out, err := blur.Convolve(img, kernel, 4)
//
// # Pixel Format
//
// Pixels are packed as 0xAARRGGBB. Convolution reads the red, green and
// blue channels and always writes fully opaque pixels.
//
// # Arithmetic
//
// Each channel is accumulated as a signed 64-bit sum of weight*value and
// divided by the kernel sum with truncating integer division. The result
// is bit-for-bit identical for every worker count and partition strategy.
//
// # Borders
//
// Only pixels whose whole kernel window lies inside the image are computed,
// and each result is stored at the window center. The border of half a
// kernel on each side is left zero.
//
// # Logging
//
// blur is silent by default. Call SetLogger to receive diagnostics.
package blur
