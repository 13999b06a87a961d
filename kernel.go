package blur

import (
	"errors"
	"fmt"

	"github.com/gogpu/blur/internal/filter"
)

// Kernel validation errors, wrapped in *ConfigurationError.
var (
	// ErrIncompleteRow is returned when len(Weights) is not a multiple of Width.
	ErrIncompleteRow = filter.ErrIncompleteRow

	// ErrZeroSum is returned when the weights sum to zero.
	ErrZeroSum = filter.ErrZeroSum

	// ErrEmptyKernel is returned for a kernel without weights or width.
	ErrEmptyKernel = filter.ErrEmptyKernel

	// ErrInvalidRadius is returned for a negative kernel radius.
	ErrInvalidRadius = errors.New("blur: negative kernel radius")

	// ErrUnknownKernel is returned by KernelByName for an unknown name.
	ErrUnknownKernel = errors.New("blur: unknown kernel")
)

// Kernel is a row-major integer weight matrix Width cells wide.
// Its height is len(Weights)/Width.
//
// Weights are not normalized: convolution divides each channel sum by Sum().
type Kernel struct {
	Width   int
	Weights []int32
}

// Height returns the number of kernel rows, or 0 for an empty kernel.
func (k Kernel) Height() int {
	if k.Width <= 0 {
		return 0
	}
	return len(k.Weights) / k.Width
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() int64 {
	return filter.KernelSum(k.Weights)
}

// At returns the weight at (col, row).
func (k Kernel) At(col, row int) int32 {
	return k.Weights[row*k.Width+col]
}

// Validate checks that the weights form complete rows and have a non-zero
// sum. Even widths are accepted; the result is then placed at the cell
// right of and below the geometric center.
func (k Kernel) Validate() error {
	if err := filter.ValidateKernel(k.Weights, k.Width); err != nil {
		return &ConfigurationError{
			Reason: fmt.Sprintf("kernel %d wide with %d weights", k.Width, len(k.Weights)),
			Err:    err,
		}
	}
	return nil
}

// GenerateKernel returns the (2*radius+1) square cone kernel.
//
// The center weighs 100 and each cell weighs 100 minus its rounded distance
// from the center, one cell step measuring 100/(radius+2). Corner weights
// become negative from radius 6 on.
func GenerateKernel(radius int) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, &ConfigurationError{Reason: fmt.Sprintf("radius %d", radius), Err: ErrInvalidRadius}
	}
	return Kernel{Width: 2*radius + 1, Weights: filter.CachedConeKernel(radius)}, nil
}

// BoxKernel returns the (2*radius+1) square kernel of ones.
func BoxKernel(radius int) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, &ConfigurationError{Reason: fmt.Sprintf("radius %d", radius), Err: ErrInvalidRadius}
	}
	return Kernel{Width: 2*radius + 1, Weights: filter.BoxKernel(radius)}, nil
}

// BinomialKernel returns the 3x3 kernel 1 2 1 / 2 4 2 / 1 2 1.
func BinomialKernel() Kernel {
	return Kernel{Width: 3, Weights: filter.BinomialKernel()}
}

// Kernel names accepted by KernelByName.
const (
	KernelCone     = "cone"
	KernelBox      = "box"
	KernelBinomial = "binomial"
)

// KernelByName resolves a kernel by name. Radius is ignored for the fixed
// binomial kernel.
func KernelByName(name string, radius int) (Kernel, error) {
	switch name {
	case KernelCone, "":
		return GenerateKernel(radius)
	case KernelBox:
		return BoxKernel(radius)
	case KernelBinomial:
		return BinomialKernel(), nil
	default:
		return Kernel{}, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
}
