package polar

import "testing"

func TestBitWriterReaderRoundTrip(t *testing.T) {
	codes := []struct {
		code   uint16
		length uint8
	}{
		{0x1, 1}, {0x0, 1}, {0x3, 2}, {0x7f, 7}, {0x7fff, 15}, {0x0, 3},
	}

	w := newBitWriter()
	for _, c := range codes {
		w.writeCode(c.code, c.length)
	}
	w.flush()

	r := newBitReader(w.bytes())
	for _, c := range codes {
		r.fill(MaxLength)
		if r.exhausted() {
			t.Fatalf("bit reader exhausted before all codes were consumed")
		}
		got := r.peek16() & ((1 << c.length) - 1)
		if got != c.code {
			t.Fatalf("peek16 low %d bits = %#x, want %#x", c.length, got, c.code)
		}
		r.consume(c.length)
	}
}

func TestBitReaderExhausted(t *testing.T) {
	r := newBitReader(nil)
	r.fill(MaxLength)
	if !r.exhausted() {
		t.Fatalf("bitReader over empty input should be immediately exhausted")
	}
}
