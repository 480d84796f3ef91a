// Package testutil generates reproducible test fixtures for the zlite
// codec packages.
package testutil

import (
	"fmt"
	"math/rand"
	"time"
)

// fixedRandSeed is a fixed seed for fully predictable fixtures.
const fixedRandSeed = 0x1234

var randSource rand.Source

func init() {
	seed := time.Now().UnixNano()
	fmt.Printf("rand seed for GenReproducibleRandomData: %v\n", seed)
	randSource = rand.NewSource(seed)
}

// GenPredictableRandomData generates size bytes of incompressible data from
// a fixed seed, reproducible across runs.
func GenPredictableRandomData(size int) []byte {
	gen := rand.New(rand.NewSource(fixedRandSeed))
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenReproducibleRandomData uses the random seed printed by this package's
// init function, so a failing test run can be reproduced by hand.
func GenReproducibleRandomData(size int) []byte {
	gen := rand.New(randSource)
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(gen.Intn(256))
	}
	return out
}

// GenRepeatingData builds size bytes by repeating pattern, the kind of
// highly compressible input a ROLZ matcher is expected to collapse to a
// handful of distinct symbols.
func GenRepeatingData(size int, pattern []byte) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}

// FirstN returns at most the first n bytes of b.
func FirstN(n int, b []byte) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
