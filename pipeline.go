package zlite

// This file is the BlockPipeline component: it glues RolzCodec and
// PolarCoder together on both the encode and decode paths, one block at a
// time.

import (
	"io"
	"log"
	"time"

	"github.com/zlite-go/zlite/internal/polar"
	"github.com/zlite-go/zlite/internal/rolz"
)

// Progress reports per-block statistics after a block has been fully
// encoded or decoded. It is sent on the channel supplied via WithProgress.
type Progress struct {
	Block          uint64
	RawSize        int
	CompressedSize int
	Duration       time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress arranges for a Progress value to be sent after every block.
// The channel must have enough capacity (or a reader running concurrently)
// that sending never blocks the codec for long; Pipeline does not select
// against a context here, so dropping the receiver simply stalls the
// pipeline.
func WithProgress(ch chan<- Progress) Option {
	return func(p *Pipeline) { p.progressCh = ch }
}

// WithVerbose turns on a log.Printf trace line for each block, giving its
// raw size, its compressed size (header plus payload) and the elapsed time.
func WithVerbose(v bool) Option {
	return func(p *Pipeline) { p.verbose = v }
}

// Pipeline owns the buffers and codec state that must be allocated once and
// reused across blocks: a ROLZ codec (whose bucket table alone is ~4MiB)
// and the index/channel bookkeeping for progress reporting. A Pipeline is
// not safe for concurrent use by multiple goroutines; create one per
// concurrent stream.
type Pipeline struct {
	codec      *rolz.Codec
	progressCh chan<- Progress
	verbose    bool
	blockIndex uint64
}

// NewPipeline allocates a Pipeline ready to encode or decode a stream of
// blocks.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{codec: rolz.NewCodec()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the pipeline's buffers. It is safe to call more than
// once.
func (p *Pipeline) Close() error {
	p.codec = nil
	return nil
}

// encodeBlock runs RolzCodec.Encode over ibuf, builds a Polar table from
// the resulting symbol histogram, and returns the wire payload: the
// 256-byte packed length table followed by the entropy-coded bitstream.
func (p *Pipeline) encodeBlock(ibuf []byte) (rlen uint32, payload []byte) {
	symbols := p.codec.Encode(ibuf)

	var freq [polar.NumSymbols]uint32
	for _, s := range symbols {
		freq[s]++
	}
	table := polar.BuildEncodeTable(freq)
	lengthBytes := polar.EncodeLengthTable(table.Length)
	bitstream := polar.Encode(table, symbols)

	payload = make([]byte, 0, len(lengthBytes)+len(bitstream))
	payload = append(payload, lengthBytes[:]...)
	payload = append(payload, bitstream...)
	return uint32(len(symbols)), payload
}

// decodeBlock is the inverse of encodeBlock: it parses the packed length
// table out of payload, rebuilds the Polar decode table, decodes exactly
// rlen symbols, and feeds them to RolzCodec.Decode.
func (p *Pipeline) decodeBlock(rlen uint32, payload []byte) ([]byte, error) {
	const lengthTableSize = polar.NumSymbols / 2
	if len(payload) < lengthTableSize {
		return nil, ErrShortPayload
	}

	var packed [lengthTableSize]byte
	copy(packed[:], payload[:lengthTableSize])
	length, err := polar.DecodeLengthTable(packed)
	if err != nil {
		return nil, err
	}

	table, err := polar.BuildDecodeTableFrom(length)
	if err != nil {
		return nil, err
	}

	symbols, err := polar.Decode(table, payload[lengthTableSize:], int(rlen))
	if err != nil {
		return nil, err
	}

	return p.codec.Decode(symbols)
}

// EncodeStream reads raw bytes from src in MaxBlockIn chunks and writes
// the resulting block container to dst, one block per chunk, until src is
// exhausted.
func (p *Pipeline) EncodeStream(src io.Reader, dst io.Writer) error {
	ibuf := make([]byte, MaxBlockIn)
	for {
		n, err := io.ReadFull(src, ibuf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return err
		}
		if n == 0 {
			return nil
		}

		start := time.Now()
		rlen, payload := p.encodeBlock(ibuf[:n])
		if writeErr := writeHeader(dst, rlen, uint32(len(payload))); writeErr != nil {
			return writeErr
		}
		if _, writeErr := dst.Write(payload); writeErr != nil {
			return writeErr
		}

		p.blockIndex++
		p.report(n, len(payload)+headerSize, time.Since(start))

		if n < MaxBlockIn {
			return nil
		}
	}
}

// DecodeStream is the strict inverse of EncodeStream: it reads blocks from
// src until a clean end-of-stream and writes the reconstructed bytes to
// dst.
func (p *Pipeline) DecodeStream(src io.Reader, dst io.Writer) error {
	for {
		rlen, olen, ok, err := readHeader(src)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if rlen > MaxBlockIn {
			return ErrRlenTooLarge
		}

		payload := make([]byte, olen)
		if _, err := io.ReadFull(src, payload); err != nil {
			return shortPayloadErr(err)
		}

		start := time.Now()
		obuf, err := p.decodeBlock(rlen, payload)
		if err != nil {
			return err
		}
		if _, err := dst.Write(obuf); err != nil {
			return err
		}

		p.blockIndex++
		p.report(len(obuf), len(payload)+headerSize, time.Since(start))
	}
}

func (p *Pipeline) report(raw, compressed int, d time.Duration) {
	p.trace("block %d: raw=%d compressed=%d elapsed=%s", p.blockIndex, raw, compressed, d)
	if p.progressCh == nil {
		return
	}
	p.progressCh <- Progress{
		Block:          p.blockIndex,
		RawSize:        raw,
		CompressedSize: compressed,
		Duration:       d,
	}
}

// trace prints a log line when the pipeline was built with WithVerbose.
func (p *Pipeline) trace(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	log.Printf(format, args...)
}
