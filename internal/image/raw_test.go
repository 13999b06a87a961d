package image

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gogpu/blur"
)

func TestRawRoundTrip(t *testing.T) {
	src := testBuffer(13, 7)
	src.SetPixel(0, 0, 0x00ABCDEF) // alpha is preserved bit for bit

	var buf bytes.Buffer
	if err := WriteRaw(&buf, src); err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PXZ1")) {
		t.Error("snapshot does not start with magic")
	}

	got, err := ReadRaw(&buf)
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("raw round trip changed pixels")
	}
}

func TestRawEmptyBuffer(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRaw(&buf, blur.NewPixelBuffer(0, 0)); err != nil {
		t.Fatal(err)
	}
	got, err := ReadRaw(&buf)
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("ReadRaw() = %dx%d, want 0x0", got.Width, got.Height)
	}
}

func TestReadRawErrors(t *testing.T) {
	var good bytes.Buffer
	if err := WriteRaw(&good, testBuffer(4, 4)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte("PXZ1\x01")},
		{"bad magic", append([]byte("PNG!"), good.Bytes()[4:]...)},
		{"truncated payload", good.Bytes()[:14]},
		{"too large", []byte("PXZ1\xff\xff\xff\x7f\xff\xff\xff\x7f")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRaw(bytes.NewReader(tt.data)); !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("ReadRaw() error = %v, want ErrBadSnapshot", err)
			}
		})
	}
}

func TestSaveLoadRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.pxz")
	src := testBuffer(9, 9)

	if err := SaveRaw(path, src); err != nil {
		t.Fatalf("SaveRaw() error = %v", err)
	}
	got, err := LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("SaveRaw/LoadRaw round trip changed pixels")
	}
}
