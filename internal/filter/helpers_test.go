package filter

import "github.com/gogpu/blur/internal/color"

// Test helper functions shared across filter tests.

// uniformPixels creates a w*h buffer filled with a single packed color.
func uniformPixels(w, h int, p uint32) []uint32 {
	pix := make([]uint32, w*h)
	for i := range pix {
		pix[i] = p
	}
	return pix
}

// gradientPixels creates a w*h buffer whose channels vary with position so
// that every output pixel depends on its whole window.
func gradientPixels(w, h int) []uint32 {
	pix := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = color.Pack(uint8(x*7+y*3), uint8(x*x+y), uint8(255-x*5-y*11))
		}
	}
	return pix
}

// formatInt formats an integer without using fmt.
func formatInt(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}
