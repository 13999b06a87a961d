package blur

import "math/rand/v2"

// Test helper functions shared across package tests.

// uniformBuffer creates a buffer filled with a single packed color.
func uniformBuffer(w, h int, p uint32) *PixelBuffer {
	b := NewPixelBuffer(w, h)
	b.Fill(p)
	return b
}

// randomBuffer creates a buffer of reproducible random opaque pixels.
func randomBuffer(w, h int, seed uint64) *PixelBuffer {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := NewPixelBuffer(w, h)
	for i := range b.Pix {
		b.Pix[i] = rng.Uint32() | 0xFF000000
	}
	return b
}

// withBeforeTask installs a hook that runs at the start of every row range.
func withBeforeTask(f func(start, end int) error) Option {
	return func(o *options) {
		o.beforeTask = f
	}
}
