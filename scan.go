package zlite

import (
	"context"
	"io"

	"github.com/zlite-go/zlite/internal/polar"
)

// LengthTableSummary describes the Polar code-length table stored at the
// front of a block's payload, without requiring the bitstream itself to be
// decoded.
type LengthTableSummary struct {
	UsedSymbols int
	MinLength   uint8
	MaxLength   uint8
}

// BlockInfo describes one block's header and length-table summary, as
// produced by a BlockScanner. It intentionally stops short of decoding the
// bitstream; see cmd/zlite-inspect for a command-line front end.
type BlockInfo struct {
	Index   int
	Rlen    uint32
	Olen    uint32
	Lengths LengthTableSummary
}

// BlockScanner walks a zlite block stream header by header, reporting each
// block's size and Polar length-table summary. It never runs the ROLZ or
// Polar decode path, so it is far cheaper than a full Reader for diagnostic
// purposes.
type BlockScanner struct {
	rd    io.Reader
	index int
	block BlockInfo
	err   error
	done  bool
}

// NewBlockScanner returns a BlockScanner over rd.
func NewBlockScanner(rd io.Reader) *BlockScanner {
	return &BlockScanner{rd: rd}
}

// Scan advances the scanner to the next block, returning false at a clean
// end of stream or on the first error encountered.
func (s *BlockScanner) Scan(ctx context.Context) bool {
	if s.done || s.err != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		s.err = err
		return false
	}

	rlen, olen, ok, err := readHeader(s.rd)
	if err != nil {
		s.err = err
		return false
	}
	if !ok {
		s.done = true
		return false
	}

	const lengthTableSize = polar.NumSymbols / 2
	if olen < lengthTableSize {
		s.err = ErrShortPayload
		return false
	}

	var packed [lengthTableSize]byte
	if _, err := io.ReadFull(s.rd, packed[:]); err != nil {
		s.err = shortPayloadErr(err)
		return false
	}
	remaining := int64(olen) - lengthTableSize
	if _, err := io.CopyN(io.Discard, s.rd, remaining); err != nil {
		s.err = shortPayloadErr(err)
		return false
	}

	length, err := polar.DecodeLengthTable(packed)
	if err != nil {
		s.err = err
		return false
	}

	s.block = BlockInfo{
		Index:   s.index,
		Rlen:    rlen,
		Olen:    olen,
		Lengths: summarizeLengths(length),
	}
	s.index++
	return true
}

// Block returns the most recently scanned block.
func (s *BlockScanner) Block() BlockInfo { return s.block }

// Err returns the first error encountered, if any.
func (s *BlockScanner) Err() error { return s.err }

func summarizeLengths(length [polar.NumSymbols]uint8) LengthTableSummary {
	var sum LengthTableSummary
	for _, l := range length {
		if l == 0 {
			continue
		}
		sum.UsedSymbols++
		if sum.MinLength == 0 || l < sum.MinLength {
			sum.MinLength = l
		}
		if l > sum.MaxLength {
			sum.MaxLength = l
		}
	}
	return sum
}
