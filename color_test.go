package blur

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b++ {
				p := Encode(uint8(r), uint8(g), uint8(b))
				if Alpha(p) != 0xFF {
					t.Fatalf("Encode(%d,%d,%d) alpha = %#x, want 0xff", r, g, b, Alpha(p))
				}
				gr, gg, gb := Decode(p)
				if int(gr) != r || int(gg) != g || int(gb) != b {
					t.Fatalf("Decode(Encode(%d,%d,%d)) = (%d,%d,%d)", r, g, b, gr, gg, gb)
				}
			}
		}
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(10, 20, 30); got != 0xFF0A141E {
		t.Errorf("Encode(10,20,30) = %#08x, want 0xff0a141e", got)
	}
}

func TestDecodeDiscardsAlpha(t *testing.T) {
	r, g, b := Decode(0x00112233)
	if r != 0x11 || g != 0x22 || b != 0x33 {
		t.Errorf("Decode(0x00112233) = (%#x,%#x,%#x)", r, g, b)
	}
}
