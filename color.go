package blur

import pcolor "github.com/gogpu/blur/internal/color"

// Decode splits a packed 0xAARRGGBB pixel into its red, green and blue
// channels. The alpha byte is ignored.
func Decode(p uint32) (r, g, b uint8) {
	return pcolor.Unpack(p)
}

// Encode packs three channels into a pixel with alpha forced to 0xFF.
//
// Decode(Encode(r, g, b)) == (r, g, b) for every input.
func Encode(r, g, b uint8) uint32 {
	return pcolor.Pack(r, g, b)
}

// Alpha returns the alpha byte of a packed pixel.
func Alpha(p uint32) uint8 {
	return uint8(p >> 24)
}
