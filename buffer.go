package blur

import (
	"errors"
	"image"
	"image/color"
	"slices"

	pcolor "github.com/gogpu/blur/internal/color"
)

// ErrInvalidDimensions is returned when a buffer's dimensions are negative
// or do not match its pixel count.
var ErrInvalidDimensions = errors.New("blur: invalid buffer dimensions")

// PixelBuffer is a row-major rectangle of packed 0xAARRGGBB pixels.
//
// len(Pix) is always Width*Height. A buffer handed to Run or Convolve is
// only read; the result is always a freshly allocated buffer.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewPixelBuffer creates a zero-filled (transparent black) buffer.
// Negative dimensions are treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width, height = max(width, 0), max(height, 0)
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// PixelBufferFrom wraps pix as a width x height buffer without copying.
func PixelBufferFrom(width, height int, pix []uint32) (*PixelBuffer, error) {
	b := &PixelBuffer{Width: width, Height: height, Pix: pix}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *PixelBuffer) validate() error {
	if b == nil || b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height {
		return ErrInvalidDimensions
	}
	return nil
}

// PixelAt returns the packed pixel at (x, y), or 0 outside the buffer.
func (b *PixelBuffer) PixelAt(x, y int) uint32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// SetPixel stores a packed pixel at (x, y). Out-of-bounds writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, p uint32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = p
}

// Fill sets every pixel to p.
func (b *PixelBuffer) Fill(p uint32) {
	for i := range b.Pix {
		b.Pix[i] = p
	}
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    slices.Clone(b.Pix),
	}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Width == other.Width && b.Height == other.Height && slices.Equal(b.Pix, other.Pix)
}

// At implements image.Image.
func (b *PixelBuffer) At(x, y int) color.Color {
	c := pcolor.UnpackU8(b.PixelAt(x, y))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Bounds implements image.Image.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// ColorModel implements image.Image.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToNRGBA converts the buffer to a standard library image.
func (b *PixelBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for i, p := range b.Pix {
		c := pcolor.UnpackU8(p)
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

// FromNRGBA packs a non-premultiplied image into a new buffer.
func FromNRGBA(img *image.NRGBA) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dx(), bounds.Dy())

	for y := range b.Height {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Width*4]
		for x := range b.Width {
			b.Pix[y*b.Width+x] = pcolor.PackU8(pcolor.ColorU8{
				R: row[x*4+0],
				G: row[x*4+1],
				B: row[x*4+2],
				A: row[x*4+3],
			})
		}
	}

	return b
}
