package image

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/blur"
)

// Raw snapshot format:
//
//	magic   [4]byte "PXZ1"
//	width   uint32 little-endian
//	height  uint32 little-endian
//	payload zstd stream of width*height little-endian uint32 pixels
//
// Snapshots store packed pixels bit for bit, so they can be compared
// exactly across runs, unlike lossy or color-managed image formats.

var rawMagic = [4]byte{'P', 'X', 'Z', '1'}

// MaxRawPixels bounds the pixel count accepted by ReadRaw.
const MaxRawPixels = 1 << 28

// ErrBadSnapshot is returned for truncated or malformed raw snapshots.
var ErrBadSnapshot = errors.New("image: bad raw snapshot")

// WriteRaw writes buf to w as a zstd-compressed raw snapshot.
func WriteRaw(w io.Writer, buf *blur.PixelBuffer) error {
	var header [12]byte
	copy(header[:4], rawMagic[:])
	binary.LittleEndian.PutUint32(header[4:8], uint32(buf.Width))
	binary.LittleEndian.PutUint32(header[8:12], uint32(buf.Height))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("image: write snapshot header: %w", err)
	}

	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return fmt.Errorf("zstd encoder: %w", err)
	}

	bw := bufio.NewWriter(enc)
	var px [4]byte
	for _, p := range buf.Pix {
		binary.LittleEndian.PutUint32(px[:], p)
		if _, err := bw.Write(px[:]); err != nil {
			_ = enc.Close()
			return fmt.Errorf("zstd encode: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	return nil
}

// ReadRaw reads a raw snapshot written by WriteRaw.
func ReadRaw(r io.Reader) (*blur.PixelBuffer, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if [4]byte(header[:4]) != rawMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadSnapshot, header[:4])
	}

	width := int(binary.LittleEndian.Uint32(header[4:8]))
	height := int(binary.LittleEndian.Uint32(header[8:12]))
	if width < 0 || height < 0 || (width > 0 && height > MaxRawPixels/width) {
		return nil, fmt.Errorf("%w: %dx%d too large", ErrBadSnapshot, width, height)
	}

	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrBadSnapshot, err)
	}
	defer dec.Close()

	buf := blur.NewPixelBuffer(width, height)
	data := make([]byte, len(buf.Pix)*4)
	if _, err := io.ReadFull(dec, data); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrBadSnapshot, err)
	}
	for i := range buf.Pix {
		buf.Pix[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	return buf, nil
}

// SaveRaw writes a raw snapshot file.
func SaveRaw(path string, buf *blur.PixelBuffer) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := WriteRaw(f, buf); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// LoadRaw reads a raw snapshot file.
func LoadRaw(path string) (*blur.PixelBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadRaw(bufio.NewReader(f))
}
