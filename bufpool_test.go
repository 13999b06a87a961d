package blur

import "testing"

func TestBufferPoolReuse(t *testing.T) {
	p := newBufferPool(2)

	b := p.get(4, 3)
	if b.Width != 4 || b.Height != 3 {
		t.Fatalf("get(4, 3) = %dx%d", b.Width, b.Height)
	}
	b.Fill(0xFFFFFFFF)
	p.put(b)

	again := p.get(4, 3)
	if again != b {
		t.Error("get() did not reuse the pooled buffer")
	}
	for i, px := range again.Pix {
		if px != 0 {
			t.Fatalf("reused buffer pixel %d = %#08x, want 0", i, px)
		}
	}

	if other := p.get(3, 4); other == b {
		t.Error("get() returned a buffer of different dimensions")
	}
}

func TestBufferPoolCapacity(t *testing.T) {
	p := newBufferPool(2)
	for i := 0; i < 5; i++ {
		p.put(NewPixelBuffer(2, 2))
	}
	p.put(nil)

	if n := p.size(); n != 2 {
		t.Errorf("size() = %d, want 2", n)
	}
}
