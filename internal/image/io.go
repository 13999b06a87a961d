// Package image loads and stores blur.PixelBuffers as image files.
//
// Decoding goes through imaging, which applies EXIF orientation and knows
// PNG, JPEG, GIF, BMP and TIFF; WebP input is registered from
// golang.org/x/image. Encoding picks the format from the file extension.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/gogpu/blur"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Load decodes the image file at path into a pixel buffer.
func Load(path string) (*blur.PixelBuffer, error) {
	img, err := imaging.Open(filepath.Clean(path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: open %s: %w", path, err)
	}
	return FromImage(img), nil
}

// LoadFromBytes decodes an in-memory image, auto-detecting the format.
func LoadFromBytes(data []byte) (*blur.PixelBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*blur.PixelBuffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image into a pixel buffer.
// The top-left corner of the image bounds becomes (0, 0).
func FromImage(img image.Image) *blur.PixelBuffer {
	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		return blur.FromNRGBA(nrgba)
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(nrgba, image.Point{}, img, bounds, draw.Src, nil)

	return blur.FromNRGBA(nrgba)
}

// Save encodes buf into the file at path. The format follows the file
// extension (png, jpg, jpeg, gif, tif, tiff, bmp).
func Save(path string, buf *blur.PixelBuffer) error {
	if _, err := formatOf(path); err != nil {
		return err
	}
	if err := imaging.Save(buf.ToNRGBA(), filepath.Clean(path)); err != nil {
		return fmt.Errorf("image: save %s: %w", path, err)
	}
	return nil
}

// Encode writes buf to w in the format named by ext, e.g. ".png".
func Encode(w io.Writer, buf *blur.PixelBuffer, ext string) error {
	format, err := formatOf(ext)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, buf.ToNRGBA(), format); err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// EncodeToBytes encodes buf in the format named by ext.
func EncodeToBytes(buf *blur.PixelBuffer, ext string) ([]byte, error) {
	var out bytes.Buffer
	if err := Encode(&out, buf, ext); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func formatOf(path string) (imaging.Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = path
	}
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(ext), "."))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}
