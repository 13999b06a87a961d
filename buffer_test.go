package blur

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	b := NewPixelBuffer(4, 3)
	if b.Width != 4 || b.Height != 3 || len(b.Pix) != 12 {
		t.Fatalf("NewPixelBuffer(4, 3) = %dx%d with %d pixels", b.Width, b.Height, len(b.Pix))
	}
	for i, p := range b.Pix {
		if p != 0 {
			t.Errorf("Pix[%d] = %#08x, want 0", i, p)
		}
	}

	if n := NewPixelBuffer(-1, 5); n.Width != 0 || len(n.Pix) != 0 {
		t.Errorf("NewPixelBuffer(-1, 5) = %dx%d, want empty", n.Width, n.Height)
	}
}

func TestPixelBufferFrom(t *testing.T) {
	pix := make([]uint32, 6)
	b, err := PixelBufferFrom(3, 2, pix)
	if err != nil {
		t.Fatalf("PixelBufferFrom() error = %v", err)
	}
	b.SetPixel(1, 1, 7)
	if pix[4] != 7 {
		t.Error("PixelBufferFrom copied the slice")
	}

	if _, err := PixelBufferFrom(3, 3, pix); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("mismatched length: error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := PixelBufferFrom(-2, -3, pix); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative dims: error = %v, want ErrInvalidDimensions", err)
	}
}

func TestPixelAtSetPixelBounds(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	b.SetPixel(-1, 0, 1)
	b.SetPixel(0, 2, 1)
	b.SetPixel(1, 0, 0xFF112233)

	if got := b.PixelAt(1, 0); got != 0xFF112233 {
		t.Errorf("PixelAt(1, 0) = %#08x", got)
	}
	if got := b.PixelAt(5, 5); got != 0 {
		t.Errorf("PixelAt out of bounds = %#08x, want 0", got)
	}
	for i, p := range []uint32{b.Pix[0], b.Pix[2], b.Pix[3]} {
		if p != 0 {
			t.Errorf("out-of-bounds write landed in pixel %d", i)
		}
	}
}

func TestCloneEqual(t *testing.T) {
	b := randomBuffer(5, 4, 1)
	c := b.Clone()

	if !b.Equal(c) {
		t.Fatal("Clone() not Equal to original")
	}
	c.Pix[0] ^= 1
	if b.Equal(c) {
		t.Error("Clone() shares pixels with original")
	}

	var nilBuf *PixelBuffer
	if !nilBuf.Equal(nil) || b.Equal(nil) {
		t.Error("Equal() mishandles nil")
	}
	if b.Equal(NewPixelBuffer(4, 5)) {
		t.Error("Equal() ignores dimensions")
	}
}

func TestImageInterface(t *testing.T) {
	b := NewPixelBuffer(3, 2)
	b.SetPixel(2, 1, 0x80102030)

	var img image.Image = b
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}
	if got := img.At(2, 1); got != want {
		t.Errorf("At(2, 1) = %v, want %v", got, want)
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	b := randomBuffer(7, 5, 99)
	b.SetPixel(0, 0, 0x40A0B0C0)

	got := FromNRGBA(b.ToNRGBA())
	if !got.Equal(b) {
		t.Error("FromNRGBA(ToNRGBA(b)) != b")
	}
}

func TestFromNRGBASubImage(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	full.SetNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	sub := full.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	b := FromNRGBA(sub)

	if b.Width != 2 || b.Height != 2 {
		t.Fatalf("FromNRGBA(sub) = %dx%d, want 2x2", b.Width, b.Height)
	}
	if got := b.PixelAt(1, 1); got != 0xFF010203 {
		t.Errorf("PixelAt(1, 1) = %#08x, want 0xff010203", got)
	}
}
