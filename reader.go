package zlite

import (
	"io"
	"time"
)

// rawBlock is a block's header plus its still-undecoded payload, handed
// from the prefetch goroutine to Read.
type rawBlock struct {
	rlen    uint32
	olen    uint32
	payload []byte
	err     error
}

// reader is a pipelined io.Reader: a single goroutine reads raw block bytes
// off the wire while Read decodes the previous block synchronously through
// a dedicated Pipeline. Only the I/O is prefetched; the ROLZ/Polar state
// machines never run concurrently with themselves, so blocks are still
// decoded strictly in order, exactly as in DecodeStream.
type reader struct {
	pipeline *Pipeline
	ch       chan rawBlock
	cur      []byte
	err      error
}

// NewReader returns an io.Reader that decompresses a zlite block stream
// read from src. Blocks are read ahead by one while the previous block is
// being decoded, which overlaps I/O latency with CPU work without
// violating the single-threaded-per-block codec contract.
func NewReader(src io.Reader, opts ...Option) io.Reader {
	rd := &reader{
		pipeline: NewPipeline(opts...),
		ch:       make(chan rawBlock, 1),
	}
	go rd.pump(src)
	return rd
}

func (rd *reader) pump(src io.Reader) {
	defer close(rd.ch)
	for {
		rlen, olen, ok, err := readHeader(src)
		if err != nil {
			rd.ch <- rawBlock{err: err}
			return
		}
		if !ok {
			return
		}
		if rlen > MaxBlockIn {
			rd.ch <- rawBlock{err: ErrRlenTooLarge}
			return
		}

		payload := make([]byte, olen)
		if _, err := io.ReadFull(src, payload); err != nil {
			rd.ch <- rawBlock{err: shortPayloadErr(err)}
			return
		}
		rd.ch <- rawBlock{rlen: rlen, olen: olen, payload: payload}
	}
}

// Read implements io.Reader.
func (rd *reader) Read(buf []byte) (int, error) {
	for len(rd.cur) == 0 {
		if rd.err != nil {
			return 0, rd.err
		}
		rb, ok := <-rd.ch
		if !ok {
			rd.err = io.EOF
			return 0, io.EOF
		}
		if rb.err != nil {
			rd.err = rb.err
			return 0, rb.err
		}

		start := time.Now()
		decoded, err := rd.pipeline.decodeBlock(rb.rlen, rb.payload)
		if err != nil {
			rd.err = err
			return 0, err
		}
		rd.pipeline.blockIndex++
		rd.pipeline.report(len(decoded), len(rb.payload)+headerSize, time.Since(start))
		rd.cur = decoded
	}
	n := copy(buf, rd.cur)
	rd.cur = rd.cur[n:]
	return n, nil
}
