// Package color packs and unpacks 32-bit 0xAARRGGBB pixel values.
//
// The layout matches what image decoders hand back as "int RGB": the top
// byte is alpha, followed by red, green and blue. Convolution only ever
// looks at the three color channels; alpha is dropped on read and forced
// opaque on write.
package color

// OpaqueAlpha is the alpha byte, in position, that Pack always sets.
const OpaqueAlpha uint32 = 0xFF000000

// ColorU8 is an unpacked pixel with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// Unpack splits a packed pixel into its red, green and blue channels.
// The alpha byte is ignored.
func Unpack(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Pack combines three channels into a fully opaque packed pixel.
func Pack(r, g, b uint8) uint32 {
	return OpaqueAlpha | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackU8 returns all four channels of p, alpha included.
func UnpackU8(p uint32) ColorU8 {
	return ColorU8{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// PackU8 packs c keeping its alpha channel as is.
// Use Pack for convolution output, which is always opaque.
func PackU8(c ColorU8) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ClampChannel converts an accumulated channel quotient to a byte.
// Quotients from kernels with only non-negative weights are already in
// range; negative weights can push them outside [0,255].
func ClampChannel(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
