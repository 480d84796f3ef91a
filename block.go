package zlite

import (
	"io"
)

// MaxBlockIn is the largest number of raw input bytes a single block may
// hold.
const MaxBlockIn = 16 * 1024 * 1024

// headerSize is the width of the rlen+olen pair that precedes every
// block's payload.
const headerSize = 8

// writeHeader writes the rlen/olen pair in the host's native byte order.
func writeHeader(w io.Writer, rlen, olen uint32) error {
	var buf [headerSize]byte
	nativeByteOrder.PutUint32(buf[0:4], rlen)
	nativeByteOrder.PutUint32(buf[4:8], olen)
	_, err := w.Write(buf[:])
	return err
}

// readHeader reads the rlen/olen pair. ok is false only when the stream
// ended exactly on a block boundary (a clean EOF); a header that is only
// partially present is reported as a corrupt stream. Any other read error
// is an I/O fault, not a short read, and is returned unchanged so the
// caller can tell the two apart.
func readHeader(r io.Reader) (rlen, olen uint32, ok bool, err error) {
	var buf [headerSize]byte
	n, readErr := io.ReadFull(r, buf[:])
	if readErr == io.EOF && n == 0 {
		return 0, 0, false, nil
	}
	if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
		return 0, 0, false, ErrCorruptHeader
	}
	if readErr != nil {
		return 0, 0, false, readErr
	}
	return nativeByteOrder.Uint32(buf[0:4]), nativeByteOrder.Uint32(buf[4:8]), true, nil
}
