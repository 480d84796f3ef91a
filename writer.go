package zlite

import (
	"io"
	"time"
)

// writer buffers input up to MaxBlockIn bytes and flushes it as a single
// zlite block, either when the buffer fills or on Close. Unlike the
// pipelined Reader, encoding is not prefetched: the match search is the
// expensive half of the codec, so there is nothing to usefully overlap
// with the (comparatively cheap) act of buffering writes.
type writer struct {
	pipeline *Pipeline
	dst      io.Writer
	buf      []byte
}

// NewWriter returns an io.WriteCloser that compresses everything written
// to it into a zlite block stream on dst. Close must be called to flush
// the final, possibly partial, block.
func NewWriter(dst io.Writer, opts ...Option) io.WriteCloser {
	return &writer{
		pipeline: NewPipeline(opts...),
		dst:      dst,
		buf:      make([]byte, 0, MaxBlockIn),
	}
}

// Write implements io.Writer.
func (wr *writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		room := MaxBlockIn - len(wr.buf)
		n := room
		if n > len(p) {
			n = len(p)
		}
		wr.buf = append(wr.buf, p[:n]...)
		p = p[n:]
		total += n

		if len(wr.buf) == MaxBlockIn {
			if err := wr.flush(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// flush encodes and writes whatever is currently buffered as one block,
// then empties the buffer. It is a no-op when the buffer is empty, which
// keeps a Close with nothing written from emitting a spurious empty block.
func (wr *writer) flush() error {
	if len(wr.buf) == 0 {
		return nil
	}
	start := time.Now()
	rlen, payload := wr.pipeline.encodeBlock(wr.buf)
	rawSize := len(wr.buf)
	wr.buf = wr.buf[:0]

	if err := writeHeader(wr.dst, rlen, uint32(len(payload))); err != nil {
		return err
	}
	if _, err := wr.dst.Write(payload); err != nil {
		return err
	}

	wr.pipeline.blockIndex++
	wr.pipeline.report(rawSize, len(payload)+headerSize, time.Since(start))
	return nil
}

// Close flushes any buffered bytes as a final block and releases the
// writer's pipeline.
func (wr *writer) Close() error {
	if err := wr.flush(); err != nil {
		return err
	}
	return wr.pipeline.Close()
}
