package polar

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		symbols []uint16
	}{
		{"single", []uint16{0x41}},
		{"repeated", repeat(0x10, 500)},
		{"two-symbol", mix(0x01, 0x02, 300)},
		{"full-alphabet", fullAlphabet()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var freq [NumSymbols]uint32
			for _, s := range tc.symbols {
				freq[s]++
			}
			enc := BuildEncodeTable(freq)
			payload := Encode(enc, tc.symbols)

			dec, err := BuildDecodeTableFrom(enc.Length)
			if err != nil {
				t.Fatalf("BuildDecodeTableFrom: %v", err)
			}
			got, err := Decode(dec, payload, len(tc.symbols))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.symbols) {
				t.Fatalf("round trip mismatch: got %v, want %v", got, tc.symbols)
			}
		})
	}
}

func TestDecodeRejectsExhaustedBitstream(t *testing.T) {
	symbols := mix(0x01, 0x02, 300)
	var freq [NumSymbols]uint32
	for _, s := range symbols {
		freq[s]++
	}
	enc := BuildEncodeTable(freq)
	payload := Encode(enc, symbols)
	dec, err := BuildDecodeTableFrom(enc.Length)
	if err != nil {
		t.Fatalf("BuildDecodeTableFrom: %v", err)
	}
	if _, err := Decode(dec, payload, len(symbols)+1000); err != ErrBitstreamExhausted {
		t.Fatalf("Decode with too few bytes: got err %v, want ErrBitstreamExhausted", err)
	}
}

func repeat(symbol uint16, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = symbol
	}
	return out
}

func mix(a, b uint16, n int) []uint16 {
	out := make([]uint16, n)
	gen := rand.New(rand.NewSource(42))
	for i := range out {
		if gen.Intn(3) == 0 {
			out[i] = b
		} else {
			out[i] = a
		}
	}
	return out
}

func fullAlphabet() []uint16 {
	gen := rand.New(rand.NewSource(7))
	out := make([]uint16, 4000)
	for i := range out {
		out[i] = uint16(gen.Intn(NumSymbols))
	}
	return out
}
