// Package filter implements integer convolution over packed 0xAARRGGBB pixels.
//
// It contains:
//   - Kernel synthesis (cone, box, binomial) with a small cone cache
//   - Kernel validation (complete rows, nonzero sum)
//   - A row-addressable Convolver that writes only valid-window pixels
//
// A Convolver reads its source and writes disjoint destination rows per call,
// so callers may run Rows for non-overlapping ranges from many goroutines.
//
// Arithmetic is exact: channels accumulate in int64 and are divided by the
// raw kernel sum with truncation, then clamped to [0, 255].
package filter
