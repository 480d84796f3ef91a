package polar

// StructuralError marks a symbol or length-table value that a decoder can
// only have received from a corrupt or malicious stream.
type StructuralError string

func (e StructuralError) Error() string {
	return "polar: corrupt stream: " + string(e)
}

var (
	// ErrLengthTooLong is returned when a packed length-table entry (or a
	// length computed by BuildLengths, which should never happen) exceeds
	// MaxLength.
	ErrLengthTooLong = StructuralError("code length exceeds 15 bits")

	// ErrBitstreamExhausted is returned when the bitstream runs out of
	// input before the expected number of symbols have been decoded.
	ErrBitstreamExhausted = StructuralError("bitstream exhausted before all symbols decoded")

	// ErrInvalidCode is returned when the bit buffer's low bits do not
	// match any code assigned by the table in use, which can only happen
	// once the real encoded bits have run out and been zero-padded past
	// a slot the table never filled.
	ErrInvalidCode = StructuralError("no code matches the remaining bits")
)
