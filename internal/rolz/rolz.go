// Package rolz implements the reduced-offset Lempel-Ziv matcher used by
// zlite: a context-indexed ring of recent positions stands in for the
// arbitrary-offset dictionary of classic LZ77, trading match quality for a
// tiny, fixed-size state machine.
package rolz

// IdxSize is the number of recent positions tracked per context.
const IdxSize = 15

// LenMin and LenMax bound the length of a single match symbol. A run
// longer than LenMax is split into several symbols by Encode's loop.
const (
	LenMin = 2
	LenMax = 17
)

// numContexts is the size of the context hash space (2^16).
const numContexts = 65536

// mod15 mirrors the original implementation's precomputed modulo table:
// indexing mod15[head+IdxSize-1] avoids a division on every context update.
var mod15 [2 * IdxSize]uint8

func init() {
	for i := range mod15 {
		mod15[i] = uint8(i % IdxSize)
	}
}

// bucket is the per-context ring of recently observed positions. item packs
// the byte position in its low 24 bits and, on the encoder side only, the
// byte last seen at that position in the high 8 bits so the match search
// can reject candidates without touching the input buffer. A zero item
// means "empty": this is also the encoding of position 0, so a match can
// never resolve to position 0. This is intentional: see Codec.Encode's
// itemPos != 0 check and DESIGN.md for why the collision is preserved.
type bucket struct {
	item [IdxSize]uint32
	head uint8
}

func (b *bucket) at(n int) uint32 {
	return b.item[mod15[int(b.head)+n]]
}

// Codec holds the ROLZ state machine: the context hash, the trailing two
// bytes that feed it, and the per-context candidate rings. A Codec is
// reusable across blocks via Reset; the buckets array is large (4MiB) and
// is meant to be allocated once by the owning pipeline.
type Codec struct {
	buckets  []bucket
	context  uint16
	lastword uint16
}

// NewCodec allocates a Codec with its bucket table already zeroed.
func NewCodec() *Codec {
	return &Codec{buckets: make([]bucket, numContexts)}
}

// Reset clears all per-block state: the bucket rings and the context/
// lastword pair. It must be called before encoding or decoding every
// independent block.
func (c *Codec) Reset() {
	for i := range c.buckets {
		c.buckets[i] = bucket{}
	}
	c.context = 0
	c.lastword = 0
}

// updateEncode applies one context-update step for the encoder, which
// caches the byte value alongside the position so later match candidates
// can be filtered without a separate buffer read.
func (c *Codec) updateEncode(buf []byte, pos int) {
	b := &c.buckets[c.context]
	b.head = mod15[int(b.head)+IdxSize-1]
	b.item[b.head] = uint32(pos) | uint32(buf[pos])<<24
	c.advance(buf[pos])
}

// updateDecode applies one context-update step for the decoder, which only
// ever needs the position: the byte itself can always be read back out of
// the output buffer that is being reconstructed.
func (c *Codec) updateDecode(buf []byte, pos int) {
	b := &c.buckets[c.context]
	b.head = mod15[int(b.head)+IdxSize-1]
	b.item[b.head] = uint32(pos)
	c.advance(buf[pos])
}

func (c *Codec) advance(b byte) {
	c.context = uint16(c.lastword)*13131 + uint16(b)
	c.lastword = (c.lastword << 8) | uint16(b)
}

// Encode converts ibuf into a stream of ROLZ symbols. Symbols 0..255 are
// literal bytes; symbols 256..511 encode a (length, index) back-reference
// as 256 + (length-LenMin)*IdxSize + index. Encode resets all per-block
// state before it begins, so a Codec can be reused across blocks.
func (c *Codec) Encode(ibuf []byte) []uint16 {
	c.Reset()
	obuf := make([]uint16, 0, len(ibuf))
	ilen := len(ibuf)

	pos := 0
	for pos < ilen {
		bestLen := LenMin - 1
		bestIdx := -1

		if pos+LenMax < ilen {
			b := &c.buckets[c.context]
			for i := 0; i < IdxSize; i++ {
				item := b.at(i)
				itemChr := byte(item >> 24)
				itemPos := int(item & 0xffffff)

				if itemPos != 0 && itemChr == ibuf[pos] {
					j := 1
					for j < LenMax && ibuf[pos+j] == ibuf[itemPos+j] {
						j++
					}
					if j > bestLen {
						bestLen = j
						bestIdx = i
						if bestLen == LenMax {
							break
						}
					}
				}
			}
		}

		if bestLen < LenMin {
			bestLen = 1
			bestIdx = -1
		}

		if bestIdx == -1 {
			obuf = append(obuf, uint16(ibuf[pos]))
		} else {
			obuf = append(obuf, uint16(256+(bestLen-LenMin)*IdxSize+bestIdx))
		}

		for k := 0; k < bestLen; k++ {
			c.updateEncode(ibuf, pos)
			pos++
		}
	}
	return obuf
}

// Decode is the strict inverse of Encode: given the symbol stream it
// reconstructs the original byte stream. It returns a corrupt-stream error
// (see Err*) if a symbol, index or offset violates the invariants that a
// well-formed encode always satisfies.
func (c *Codec) Decode(symbols []uint16) ([]byte, error) {
	c.Reset()
	obuf := make([]byte, 0, len(symbols))

	for _, s := range symbols {
		if s >= 512 {
			return nil, ErrSymbolRange
		}
		if s < 256 {
			obuf = append(obuf, byte(s))
			c.updateDecode(obuf, len(obuf)-1)
			continue
		}

		idx := int(s-256) % IdxSize
		length := int(s-256)/IdxSize + LenMin

		b := &c.buckets[c.context]
		item := b.at(idx)
		srcPos := int(item)
		if item == 0 {
			return nil, ErrEmptySlot
		}
		offset := len(obuf) - srcPos
		if offset <= 0 {
			return nil, ErrBadOffset
		}

		for i := 0; i < length; i++ {
			obuf = append(obuf, obuf[len(obuf)-offset])
			c.updateDecode(obuf, len(obuf)-1)
		}
	}
	return obuf, nil
}
