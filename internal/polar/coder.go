package polar

// Table is a fully built code: the length table it was derived from, the
// canonical bit-reversed codes, and (on the decode path) the flat lookup.
// BlockPipeline builds one of these per block in each direction.
type Table struct {
	Length [NumSymbols]uint8
	Code   [NumSymbols]uint16
	Decode [decodeTableSize]uint16
}

// BuildEncodeTable derives lengths and codes from a histogram. It does not
// populate Decode, which an encoder never needs.
func BuildEncodeTable(freq [NumSymbols]uint32) Table {
	length := BuildLengths(freq)
	return Table{Length: length, Code: BuildCodes(length)}
}

// BuildDecodeTableFrom derives codes and the flat decode lookup from a
// length table read off the wire.
func BuildDecodeTableFrom(length [NumSymbols]uint8) (Table, error) {
	code := BuildCodes(length)
	decode, err := BuildDecodeTable(length, code)
	if err != nil {
		return Table{}, err
	}
	return Table{Length: length, Code: code, Decode: decode}, nil
}

// Encode entropy-codes a symbol stream against a table built from its own
// histogram, returning the packed bitstream bytes.
func Encode(table Table, symbols []uint16) []byte {
	w := newBitWriter()
	for _, s := range symbols {
		w.writeCode(table.Code[s], table.Length[s])
	}
	w.flush()
	return w.bytes()
}

// Decode reads exactly count symbols out of a bitstream using table's flat
// decode lookup. It returns ErrBitstreamExhausted if the input runs out
// before count symbols have been produced.
func Decode(table Table, payload []byte, count int) ([]uint16, error) {
	r := newBitReader(payload)
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		r.fill(MaxLength)
		if r.exhausted() {
			return nil, ErrBitstreamExhausted
		}
		s := table.Decode[r.peek16()]
		length := table.Length[s]
		if length == 0 {
			return nil, ErrInvalidCode
		}
		r.consume(length)
		out[i] = s
	}
	return out, nil
}
