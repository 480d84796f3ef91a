package rolz

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, data []byte) []uint16 {
	t.Helper()
	c := NewCodec()
	symbols := c.Encode(data)
	for _, s := range symbols {
		if s >= 512 {
			t.Fatalf("encoder produced out-of-range symbol %d", s)
		}
	}
	d := NewCodec()
	got, err := d.Decode(symbols)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
	return symbols
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	symbols := roundTrip(t, []byte{0x41})
	if len(symbols) != 1 || symbols[0] != 0x41 {
		t.Fatalf("single byte symbols = %v, want [0x41]", symbols)
	}
}

func TestRoundTripLongRun(t *testing.T) {
	data := bytes.Repeat([]byte{0x00}, 32)
	symbols := roundTrip(t, data)
	if len(symbols) >= len(data) {
		t.Fatalf("expected the run to collapse into fewer symbols than raw bytes, got %d symbols for %d bytes", len(symbols), len(data))
	}
	if symbols[0] != 0x00 {
		t.Fatalf("first symbol should be the literal 0x00, got %d", symbols[0])
	}
	foundMatch := false
	for _, s := range symbols[1:] {
		if s >= 256 {
			foundMatch = true
		}
	}
	if !foundMatch {
		t.Fatalf("expected at least one match symbol after the initial literal")
	}
}

func TestRoundTripRepeatingPattern(t *testing.T) {
	data := []byte("abababababab")
	symbols := roundTrip(t, data)
	foundMatch := false
	for _, s := range symbols {
		if s >= 256 {
			foundMatch = true
		}
	}
	if !foundMatch {
		t.Fatalf("expected a match symbol referring back to the first \"ab\"")
	}
}

func TestRoundTripRandomData(t *testing.T) {
	gen := rand.New(rand.NewSource(99))
	data := make([]byte, 1<<16)
	for i := range data {
		data[i] = byte(gen.Intn(256))
	}
	roundTrip(t, data)
}

func TestDecodeRejectsOutOfRangeSymbol(t *testing.T) {
	c := NewCodec()
	if _, err := c.Decode([]uint16{512}); err != ErrSymbolRange {
		t.Fatalf("Decode([512]) = %v, want ErrSymbolRange", err)
	}
}

func TestDecodeRejectsEmptySlot(t *testing.T) {
	c := NewCodec()
	// The very first symbol's context has never been populated, so any
	// match-type symbol at block start must fail with ErrEmptySlot.
	if _, err := c.Decode([]uint16{256}); err != ErrEmptySlot {
		t.Fatalf("Decode([256]) = %v, want ErrEmptySlot", err)
	}
}

func TestContextDeterminism(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	enc := NewCodec()
	symbols := enc.Encode(data)

	dec := NewCodec()
	decoded, err := dec.Decode(symbols)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded mismatch")
	}
	if enc.context != dec.context || enc.lastword != dec.lastword {
		t.Fatalf("encoder and decoder context state diverged: enc={%d,%d} dec={%d,%d}",
			enc.context, enc.lastword, dec.context, dec.lastword)
	}
}

func TestResetClearsState(t *testing.T) {
	c := NewCodec()
	c.Encode([]byte("abababab"))
	c.Reset()
	if c.context != 0 || c.lastword != 0 {
		t.Fatalf("Reset did not clear context/lastword")
	}
	for i := range c.buckets {
		if c.buckets[i] != (bucket{}) {
			t.Fatalf("Reset did not clear bucket %d", i)
		}
	}
}
